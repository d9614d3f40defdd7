package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	ok, err := m.Exists(ctx, "a.csv")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Upload(ctx, "a.csv", []byte("x,y\n"), "text/csv"))

	ok, err = m.Exists(ctx, "a.csv")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := m.Download(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, []byte("x,y\n"), data)
}

func TestMemory_DownloadMissing(t *testing.T) {
	m := NewMemory()
	_, err := m.Download(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_CopyAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Upload(ctx, "src", []byte("payload"), "text/plain"))

	require.NoError(t, m.Copy(ctx, "src", "dst"))
	data, err := m.Download(ctx, "dst")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, m.Delete(ctx, "src"))
	_, err = m.Download(ctx, "src")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.Copy(ctx, "src", "dst2"), ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "src"), ErrNotFound)
}

func TestMemory_ListByPrefix(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, name := range []string{"raw/b.json", "raw/a.json", "schedule/s.csv"} {
		require.NoError(t, m.Upload(ctx, name, []byte("{}"), "application/json"))
	}

	names, err := m.List(ctx, "raw/")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw/a.json", "raw/b.json"}, names)

	all, err := m.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
