package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

func loadFromFS(ctx context.Context, files fs.FS, name string, limit int64) ([]byte, error) {
	if name == "" {
		return nil, errors.New("source loader: fs path is required")
	}
	if files == nil {
		return nil, errors.New("source loader: fs is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("source loader: open %s: %w", name, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, limit, name)
}
