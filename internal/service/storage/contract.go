package storage

import (
	"context"
	"io"
)

// Uploader stores an uploaded file and returns the URL it will be
// reachable at.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}
