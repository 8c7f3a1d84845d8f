package modelsource

import (
	"context"
	"fmt"
	"os"
)

// FileSource reads the artifact from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource constructs a file backed source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Read returns the artifact bytes.
func (s *FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

// Describe names the source for logs.
func (s *FileSource) Describe() string {
	return "file://" + s.path
}
