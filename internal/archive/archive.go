// Package archive writes timestamped, compressed copies of raw activity
// dumps. Archives are append-only: one file per run, never overwritten.
package archive

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/flazor/stride/schema"
	"github.com/klauspost/compress/gzip"
)

// timestampFormat names archive files by run time, e.g. 20260826_153000.
const timestampFormat = "20060102_150405"

// WriteRaw stores a gzip-compressed copy of the untransformed record dump
// under dir, named by the run timestamp. The file is created exclusively;
// a second run in the same second fails rather than overwriting.
func WriteRaw(raw []byte, dir string, now time.Time, logger *slog.Logger) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &schema.PersistenceError{Path: dir, Err: err}
	}

	name := fmt.Sprintf("strava_activities_raw_%s.json.gz", now.Format(timestampFormat))
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", &schema.PersistenceError{Path: path, Err: err}
	}

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(raw); err != nil {
		_ = gz.Close()
		_ = f.Close()
		_ = os.Remove(path)
		return "", &schema.PersistenceError{Path: path, Err: err}
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", &schema.PersistenceError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", &schema.PersistenceError{Path: path, Err: err}
	}

	logger.Info("archived raw dump", "path", path, "bytes", len(raw))
	return path, nil
}
