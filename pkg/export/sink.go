package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ShareFunc hands a stored file to the platform share/export action.
type ShareFunc func(ctx context.Context, path, mime string) error

// LocalSink writes artifacts into a user-discoverable directory and then
// invokes the share hook. Failures surface as WriteError with no partial
// cleanup: a retry recomputes the artifact from current state.
type LocalSink struct {
	dir   string
	share ShareFunc
}

func NewLocalSink(dir string, share ShareFunc) *LocalSink {
	return &LocalSink{dir: dir, share: share}
}

func (s *LocalSink) Store(ctx context.Context, artifact Artifact) (string, error) {
	logger := zerolog.Ctx(ctx)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.WriteError{Path: s.dir, Err: err}
	}

	path := filepath.Join(s.dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Content, 0o644); err != nil {
		return "", &domain.WriteError{Path: path, Err: err}
	}

	if s.share != nil {
		if err := s.share(ctx, path, artifact.MIME); err != nil {
			return "", &domain.WriteError{Path: path, Err: err}
		}
	}

	logger.Info().Str("path", path).Str("mime", artifact.MIME).Msg("export stored")
	return path, nil
}
