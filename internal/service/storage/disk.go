package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskUploader writes uploads to a local directory; files are served
// back under /uploads/ by the HTTP server.
type DiskUploader struct {
	dir string
}

func NewDiskUploader(dir string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir '%s': %w", dir, err)
	}
	return &DiskUploader{dir: dir}, nil
}

func (u *DiskUploader) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	path := filepath.Join(u.dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file '%s': %w", path, err)
	}
	defer f.Close()

	if _, err = io.Copy(f, body); err != nil {
		return "", fmt.Errorf("failed to write upload file '%s': %w", path, err)
	}

	return "/uploads/" + filename, nil
}
