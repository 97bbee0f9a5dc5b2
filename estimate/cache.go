package estimate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-pcl/master"
)

// CacheState reports how a workspace was obtained.
type CacheState int

const (
	// CacheMiss means the workspace was computed.
	CacheMiss CacheState = iota
	// CacheHit means the workspace was loaded from the cache file.
	CacheHit
	// CacheStale means a cache file existed but was computed for different
	// masks or bins, so the workspace was recomputed.
	CacheStale
)

func (s CacheState) String() string {
	switch s {
	case CacheMiss:
		return "miss"
	case CacheHit:
		return "hit"
	case CacheStale:
		return "stale"
	default:
		return fmt.Sprintf("CacheState(%d)", int(s))
	}
}

// WorkspaceCache configures coupling matrix caching. An empty Path disables
// caching. Save persists freshly computed workspaces to Path.
type WorkspaceCache struct {
	Path string
	Save bool
}

// Resolve loads the workspace from the cache file when it exists and
// matches the fields and bins, and computes it otherwise.
func (c WorkspaceCache) Resolve(f1, f2 *master.Field, b *master.Bins, opts ...Option) (*master.Workspace, CacheState, error) {
	cfg := ApplyOptions(opts...)
	log := cfg.Logger

	state := CacheMiss
	if c.Path != "" {
		ws, err := c.load(f1, f2, b, log)
		switch {
		case err == nil:
			return ws, CacheHit, nil
		case errors.Is(err, errStaleWorkspace):
			state = CacheStale
		case !errors.Is(err, fs.ErrNotExist):
			return nil, CacheMiss, err
		}
	}

	log.Info("computing coupling matrix", zap.Int("bins", b.Count()))
	ws, err := master.ComputeWorkspace(f1, f2, b)
	if err != nil {
		return nil, state, fmt.Errorf("estimate: compute workspace: %w", err)
	}

	if c.Path != "" && c.Save {
		if err := ws.WriteFile(c.Path); err != nil {
			return nil, state, fmt.Errorf("estimate: save workspace: %w", err)
		}
		log.Info("workspace saved", zap.String("path", c.Path))
	}
	return ws, state, nil
}

var errStaleWorkspace = errors.New("estimate: cached workspace does not match fields and bins")

func (c WorkspaceCache) load(f1, f2 *master.Field, b *master.Bins, log *zap.Logger) (*master.Workspace, error) {
	if _, err := os.Stat(c.Path); err != nil {
		return nil, err
	}

	log.Info("loading workspace", zap.String("path", c.Path))
	ws, err := master.ReadWorkspaceFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("estimate: load workspace %s: %w", c.Path, err)
	}

	want, err := master.WorkspaceFingerprint(f1, f2, b)
	if err != nil {
		return nil, err
	}
	if ws.Fingerprint() != want {
		log.Warn("cached workspace is stale, recomputing",
			zap.String("path", c.Path),
			zap.Uint64("cached", ws.Fingerprint()),
			zap.Uint64("expected", want))
		return nil, errStaleWorkspace
	}
	return ws, nil
}
