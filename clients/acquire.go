package clients

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
)

// Source locates the corpus archive and where it is unpacked.
type Source struct {
	URL     string
	Archive string
	Dir     string
}

// Acquire downloads and unpacks the corpus unless Dir already exists. A
// lock file next to Dir serializes concurrent runs; a run that waited on
// the lock finds Dir present and returns without downloading.
func (h *HTTP) Acquire(ctx context.Context, src Source) (bool, error) {
	if exists(src.Dir) {
		h.log.WithField("dir", src.Dir).Debug("corpus source present, skipping download")
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(src.Dir)), 0o755); err != nil {
		return false, err
	}

	lock := flock.New(filepath.Clean(src.Dir) + ".lock")
	ok, err := lock.TryLockContext(ctx, 250*time.Millisecond)
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return false, errors.New("could not acquire corpus lock")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			h.log.WithError(err).Warn("failed to release corpus lock")
		}
	}()

	if exists(src.Dir) {
		return false, nil
	}

	if _, err := h.Download(ctx, src.URL, src.Archive); err != nil {
		return false, err
	}

	// Unpack next to Dir and rename, so a crash never leaves a partial Dir
	// that the next run would mistake for a finished one.
	staging := filepath.Clean(src.Dir) + ".extracting"
	if err := os.RemoveAll(staging); err != nil {
		return false, err
	}
	n, err := Extract(src.Archive, staging)
	if err != nil {
		_ = os.RemoveAll(staging)
		return false, err
	}
	if err := os.Rename(staging, src.Dir); err != nil {
		return false, err
	}
	h.log.WithFields(logrus.Fields{"dir": src.Dir, "files": n}).Info("corpus extracted")
	return true, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
