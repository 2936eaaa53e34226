// Package storage keeps the raw bytes of uploaded documents. Event metadata
// refers to a stored file only through its handle.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbaid4/testwecicada/internal/common"
)

// BlobStore is implemented by DiskStore and S3Store.
type BlobStore interface {
	// Put stores r under handle and returns the path recorded on the document.
	Put(ctx context.Context, handle string, r io.Reader) (string, error)
	// Open returns a reader for handle. The caller closes it.
	Open(ctx context.Context, handle string) (io.ReadCloser, error)
	// Delete removes handle. Deleting a missing handle is not an error.
	Delete(ctx context.Context, handle string) error
	List(ctx context.Context) ([]BlobInfo, error)
}

type BlobInfo struct {
	Handle  string
	ModTime time.Time
}

const maxExtLen = 16

// NewHandle returns a fresh storage handle that keeps the extension of the
// client-supplied name. The original name itself never reaches the store.
func NewHandle(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))))
	if len(ext) > maxExtLen || !cleanExt(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

func cleanExt(ext string) bool {
	for i, r := range ext {
		if i == 0 && r == '.' {
			continue
		}
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// ValidateHandle rejects anything that could resolve outside the store.
func ValidateHandle(handle string) error {
	switch {
	case handle == "", handle == ".", handle == "..":
	case strings.ContainsAny(handle, "/\\\x00\"\r\n"):
	case strings.Contains(handle, ".."):
	case filepath.IsAbs(handle):
	default:
		return nil
	}
	return fmt.Errorf("%w: invalid filename", common.ErrBadRequest)
}
