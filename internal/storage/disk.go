package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kbaid4/testwecicada/internal/common"
)

// DiskStore keeps blobs as flat files in one directory.
type DiskStore struct {
	dir string
}

var _ BlobStore = (*DiskStore)(nil)

// NewDiskStore creates dir if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

func (d *DiskStore) Dir() string { return d.dir }

func (d *DiskStore) Put(ctx context.Context, handle string, r io.Reader) (string, error) {
	if err := ValidateHandle(handle); err != nil {
		return "", err
	}
	path := filepath.Join(d.dir, handle)

	// Write to a temp file first so a failed copy never leaves a partial blob under handle.
	tmp, err := os.CreateTemp(d.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", handle, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, ctxReader{ctx: ctx, r: r}); err != nil {
		tmp.Close()
		return "", fmt.Errorf("storage: put %s: %w", handle, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: put %s: %w", handle, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("storage: put %s: %w", handle, err)
	}
	return path, nil
}

func (d *DiskStore) Open(ctx context.Context, handle string) (io.ReadCloser, error) {
	if err := ValidateHandle(handle); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(d.dir, handle))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: file not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", handle, err)
	}
	return f, nil
}

func (d *DiskStore) Delete(ctx context.Context, handle string) error {
	if err := ValidateHandle(handle); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(d.dir, handle))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", handle, err)
	}
	return nil
}

func (d *DiskStore) List(ctx context.Context) ([]BlobInfo, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	out := make([]BlobInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || ValidateHandle(e.Name()) != nil || e.Name()[0] == '.' {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BlobInfo{Handle: e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
