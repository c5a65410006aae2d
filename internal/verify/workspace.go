package verify

import (
	"os"
	"path/filepath"
)

// workspace is the per-run scratch directory holding fetched manifests,
// sidecars, and comparison downloads. Close releases it on every exit path
// and tolerates an already-removed tree.
type workspace struct {
	dir string
}

func newWorkspace() (*workspace, error) {
	dir, err := os.MkdirTemp("", "relcheck-*")
	if err != nil {
		return nil, err
	}
	return &workspace{dir: dir}, nil
}

// path maps an asset name into the workspace. Base strips any path
// components an asset name could smuggle in.
func (w *workspace) path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

func (w *workspace) Close() error {
	if w.dir == "" {
		return nil
	}
	dir := w.dir
	w.dir = ""
	return os.RemoveAll(dir)
}
