package scraper

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"scraper/pkg/logger"
	"scraper/pkg/serrors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckWritable verifies that dir exists and accepts new files by creating and
// removing a probe file in it. It performs no network activity, so callers run
// it before fetching anything.
func CheckWritable(ctx context.Context, dir string) error {
	probe := filepath.Join(dir, probeName(time.Now()))
	logger.Debug(ctx, "checking destination is writable", zap.String("probe", probe))

	f, err := os.OpenFile(probe, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnwritable, err, "could not write to destination directory %s", dir)
	}
	closeErr := f.Close()

	if err := os.Remove(probe); err != nil {
		return serrors.Wrap(serrors.ErrUnwritable, err, "could not remove probe file %s", probe)
	}
	if closeErr != nil {
		return serrors.Wrap(serrors.ErrUnwritable, closeErr, "could not write to destination directory %s", dir)
	}

	logger.Debug(ctx, "destination is writable")

	return nil
}

// probeName is ".scraper-probe-" followed by the first 10 hex digits of the
// SHA-1 of the timestamp.
func probeName(now time.Time) string {
	id := uuid.NewSHA1(uuid.Nil, []byte(now.Format(time.RFC3339Nano)))

	return ".scraper-probe-" + hex.EncodeToString(id[:5])
}
