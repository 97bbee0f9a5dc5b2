package estimate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWorkspaceCacheMissThenHit(t *testing.T) {
	f1, f2 := testFields(t)
	b := testBins(t, testSpec)
	cache := WorkspaceCache{Path: filepath.Join(t.TempDir(), "ws.bin"), Save: true}

	computed, state, err := cache.Resolve(f1, f2, b)
	require.NoError(t, err)
	require.Equal(t, CacheMiss, state)
	require.FileExists(t, cache.Path)

	loaded, state, err := cache.Resolve(f1, f2, b)
	require.NoError(t, err)
	require.Equal(t, CacheHit, state)
	require.Equal(t, computed.Fingerprint(), loaded.Fingerprint())
	require.True(t, equalDense(computed, loaded))
}

func TestWorkspaceCacheWithoutSaveWritesNothing(t *testing.T) {
	f1, f2 := testFields(t)
	b := testBins(t, testSpec)
	cache := WorkspaceCache{Path: filepath.Join(t.TempDir(), "ws.bin")}

	_, state, err := cache.Resolve(f1, f2, b)
	require.NoError(t, err)
	require.Equal(t, CacheMiss, state)
	require.NoFileExists(t, cache.Path)
}

func TestWorkspaceCacheDisabled(t *testing.T) {
	f1, f2 := testFields(t)
	b := testBins(t, testSpec)

	ws, state, err := WorkspaceCache{Save: true}.Resolve(f1, f2, b)
	require.NoError(t, err)
	require.Equal(t, CacheMiss, state)
	require.Equal(t, b.Count(), ws.Bins().Count())
}

func TestWorkspaceCacheStaleIsRecomputed(t *testing.T) {
	f1, f2 := testFields(t)
	cache := WorkspaceCache{Path: filepath.Join(t.TempDir(), "ws.bin"), Save: true}

	_, _, err := cache.Resolve(f1, f2, testBins(t, testSpec))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	other := testBins(t, BinSpec{{2, 9}, {10, 23}})

	ws, state, err := cache.Resolve(f1, f2, other, WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Equal(t, CacheStale, state)
	require.Equal(t, 2, ws.Bins().Count())
	require.Equal(t, 1, logs.FilterMessage("cached workspace is stale, recomputing").Len())

	// The rewritten file now matches the new bins.
	_, state, err = cache.Resolve(f1, f2, other)
	require.NoError(t, err)
	require.Equal(t, CacheHit, state)
}

func TestWorkspaceCacheCorruptFile(t *testing.T) {
	f1, f2 := testFields(t)
	cache := WorkspaceCache{Path: filepath.Join(t.TempDir(), "ws.bin"), Save: true}
	require.NoError(t, os.WriteFile(cache.Path, []byte("not a workspace"), 0o644))

	_, _, err := cache.Resolve(f1, f2, testBins(t, testSpec))
	require.Error(t, err)
}
