package device

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DirTarget writes samples into a directory, typically a mounted SD card.
type DirTarget struct {
	Dir string
}

func (d DirTarget) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid key %q", key)
	}
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(d.Dir, key))
	if err != nil {
		return err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if n != size {
		return fmt.Errorf("short write for %s: %d of %d bytes", key, n, size)
	}
	return nil
}
