// Package device copies a sample set onto external storage.
package device

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"sampleset/preset"
	"sampleset/sample"
)

// Target receives the sample files of a pushed set.
type Target interface {
	Put(ctx context.Context, key string, r io.Reader, size int64) error
}

// Report describes what a push did per slot.
type Report struct {
	Pushed  []string // object keys written
	Missing []string // slot samples not found in the library
	Empty   int      // unselected slots
}

// SlotKey is the object name for a slot: 01_kick.wav for slot 0.
func SlotKey(slot int, name string) string {
	return fmt.Sprintf("%02d_%s", slot+1, name)
}

// Push uploads every selected slot of set to target. Samples that the
// library no longer contains are skipped and listed in the report.
func Push(ctx context.Context, target Target, set preset.SampleSet, lib sample.Library, log *zap.Logger) (Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var rep Report
	for slot, name := range set.Samples {
		if name == "" {
			rep.Empty++
			continue
		}
		path, ok := lib.Path(name)
		if !ok {
			log.Warn("sample not in library", zap.Int("slot", slot+1), zap.String("sample", name))
			rep.Missing = append(rep.Missing, name)
			continue
		}
		key := SlotKey(slot, name)
		if err := putFile(ctx, target, key, path); err != nil {
			return rep, fmt.Errorf("push slot %d (%s): %w", slot+1, name, err)
		}
		log.Debug("pushed sample", zap.String("key", key), zap.String("path", path))
		rep.Pushed = append(rep.Pushed, key)
	}
	return rep, nil
}

func putFile(ctx context.Context, target Target, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	return target.Put(ctx, key, f, info.Size())
}
