package archive

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flazor/stride/schema"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteRawRoundTrip(t *testing.T) {
	dir := t.TempDir()
	raw := []byte(`[{"id":1,"name":"Morning Run"}]`)
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	path, err := WriteRaw(raw, dir, now, testLogger())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "strava_activities_raw_20260826_153000.json.gz"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	got, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestWriteRawCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive", "raw")

	path, err := WriteRaw([]byte("[]"), dir, time.Now(), testLogger())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteRawNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)

	first, err := WriteRaw([]byte("first"), dir, now, testLogger())
	require.NoError(t, err)

	_, err = WriteRaw([]byte("second"), dir, now, testLogger())
	var perr *schema.PersistenceError
	require.ErrorAs(t, err, &perr, "Same-second archives must not clobber each other")

	f, err := os.Open(first)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	got, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), got, "Existing archive is untouched")
}
