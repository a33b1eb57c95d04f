package export

import "context"

const (
	MIMECSV = "text/csv"
	MIMEPDF = "application/pdf"
)

// Artifact is a fully serialized export: content, file name and the MIME
// type sinks use for the share action or object content type.
type Artifact struct {
	Name    string
	MIME    string
	Content []byte
}

// Sink stores an artifact durably and returns its resolved location. A
// failed store is reported as a WriteError; the caller retries by
// recomputing the artifact, never by resuming.
type Sink interface {
	Store(ctx context.Context, artifact Artifact) (string, error)
}
