package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSink_Store(t *testing.T) {
	dir := t.TempDir()
	sink := NewLocalSink(dir, nil)

	path, err := sink.Store(context.Background(), Artifact{
		Name:    "Daywise_Report.csv",
		MIME:    MIMECSV,
		Content: []byte("Report,Daywise\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Daywise_Report.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Report,Daywise\n", string(content))
}

func TestLocalSink_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	sink := NewLocalSink(dir, nil)

	_, err := sink.Store(context.Background(), Artifact{Name: "r.csv", Content: []byte("x")})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "r.csv"))
	assert.NoError(t, err)
}

func TestLocalSink_ShareHook(t *testing.T) {
	dir := t.TempDir()

	var sharedPath, sharedMIME string
	sink := NewLocalSink(dir, func(ctx context.Context, path, mime string) error {
		sharedPath = path
		sharedMIME = mime
		return nil
	})

	path, err := sink.Store(context.Background(), Artifact{
		Name:    "r.pdf",
		MIME:    MIMEPDF,
		Content: []byte("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, path, sharedPath)
	assert.Equal(t, MIMEPDF, sharedMIME)
}

func TestLocalSink_ShareFailureIsWriteError(t *testing.T) {
	sink := NewLocalSink(t.TempDir(), func(ctx context.Context, path, mime string) error {
		return errors.New("share cancelled")
	})

	_, err := sink.Store(context.Background(), Artifact{Name: "r.csv", Content: []byte("x")})

	var writeErr *domain.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Contains(t, writeErr.Path, "r.csv")
}

func TestLocalSink_UnwritableDirIsWriteError(t *testing.T) {
	// A regular file where the export dir should be makes MkdirAll fail.
	tmp := t.TempDir()
	blocked := filepath.Join(tmp, "exports")
	require.NoError(t, os.WriteFile(blocked, []byte("not a dir"), 0o644))

	sink := NewLocalSink(blocked, nil)
	_, err := sink.Store(context.Background(), Artifact{Name: "r.csv", Content: []byte("x")})

	var writeErr *domain.WriteError
	assert.ErrorAs(t, err, &writeErr)
}
