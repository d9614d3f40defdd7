package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojclinton/cricket-analytics-etl/internal/blob"
	"github.com/manojclinton/cricket-analytics-etl/internal/observability"
)

const uploadPrefix = "data/"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeLocalFiles(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("match_%02d.json", i))
		require.NoError(t, os.WriteFile(name, []byte(fmt.Sprintf(`{"match_id":%d}`, i)), 0o644))
	}
	return dir
}

// failingStore wraps a Store and fails uploads of one object name.
type failingStore struct {
	blob.Store
	failName string
}

func (f *failingStore) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	if name == f.failName {
		return fmt.Errorf("upload %s: connection reset", name)
	}
	return f.Store.Upload(ctx, name, data, contentType)
}

func TestUploader_Run(t *testing.T) {
	ctx := context.Background()
	dir := writeLocalFiles(t, 10)
	store := blob.NewMemory()

	u := New(store, uploadPrefix, 8, clockwork.NewFakeClock(), testLogger(), observability.NewMetricsForTesting())
	report, err := u.Run(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, 10, report.Local)
	assert.Equal(t, 10, report.Uploaded)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	names, err := store.List(ctx, uploadPrefix)
	require.NoError(t, err)
	assert.Len(t, names, 10)

	data, err := store.Download(ctx, uploadPrefix+"match_03.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"match_id":3}`), data)
}

func TestUploader_Run_OneFailureDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	dir := writeLocalFiles(t, 10)
	store := &failingStore{Store: blob.NewMemory(), failName: uploadPrefix + "match_04.json"}

	u := New(store, uploadPrefix, 8, clockwork.NewFakeClock(), testLogger(), observability.NewMetricsForTesting())
	report, err := u.Run(ctx, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match_04.json")

	assert.Equal(t, 9, report.Uploaded)
	assert.Equal(t, 1, report.Failed)

	names, err := store.List(ctx, uploadPrefix)
	require.NoError(t, err)
	assert.Len(t, names, 9)
}

func TestUploader_Run_SkipsExisting(t *testing.T) {
	ctx := context.Background()
	dir := writeLocalFiles(t, 3)
	store := blob.NewMemory()
	require.NoError(t, store.Upload(ctx, uploadPrefix+"match_00.json", []byte(`{}`), "application/json"))

	u := New(store, uploadPrefix, 2, clockwork.NewFakeClock(), testLogger(), observability.NewMetricsForTesting())
	report, err := u.Run(ctx, dir)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Local)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Uploaded)

	// The pre-existing object keeps its original content.
	data, err := store.Download(ctx, uploadPrefix+"match_00.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)
}

func TestUploader_Run_IgnoresNonJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "match.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	u := New(blob.NewMemory(), uploadPrefix, 1, clockwork.NewFakeClock(), testLogger(), observability.NewMetricsForTesting())
	report, err := u.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Local)
	assert.Equal(t, 1, report.Uploaded)
}

func TestUploader_Run_MissingDir(t *testing.T) {
	u := New(blob.NewMemory(), uploadPrefix, 1, clockwork.NewFakeClock(), testLogger(), observability.NewMetricsForTesting())
	_, err := u.Run(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
