package s3

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dairy-tools/milk-atlas/pkg/export"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// API is the slice of the S3 client the sink needs.
type API interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// Sink uploads export artifacts to an S3 bucket, carrying the artifact
// MIME type as the object content type.
type Sink struct {
	client API
	bucket string
	prefix string
}

func NewSink(client API, bucket, prefix string) *Sink {
	return &Sink{client: client, bucket: bucket, prefix: prefix}
}

func (s *Sink) Store(ctx context.Context, artifact export.Artifact) (string, error) {
	key := path.Join(s.prefix, artifact.Name)

	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(artifact.Content),
		ContentType: aws.String(artifact.MIME),
	})
	if err != nil {
		return "", &domain.WriteError{Path: key, Err: err}
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
