package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/sarahbx/must-oc/internal/coreerr"
)

const (
	kindsFileName         = "kinds.yaml"
	clusterScopedFileName = "cluster-scoped.yaml"
	lockFileName          = ".update.lock"
	filePerm              = 0o644

	lockRetryInterval = 50 * time.Millisecond
)

// Lock acquires the exclusive update-time file lock for dir. Concurrent
// invocations of update-types are unsupported; operators are expected to
// run updates serially. The lock is not required for correctness — the
// write-then-rename in Store is itself the atomicity boundary — but it
// turns the unsupported concurrent case into a clear wait instead of a
// last-rename-wins race. Callers must Unlock when done.
func Lock(ctx context.Context, dir string) (*flock.Flock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, lockFileName)
	fl := flock.New(path)
	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring registry lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("acquiring registry lock %s: not acquired", path)
	}
	return fl, nil
}

// Load reads the two registry files from dir and validates them into a
// Registry. A missing file is treated as empty (bootstrap), never an
// error; a present-but-malformed file fails with *coreerr.ConfigCorrupt.
func Load(dir string) (*Registry, error) {
	kinds, err := loadKinds(filepath.Join(dir, kindsFileName))
	if err != nil {
		return nil, err
	}
	clusterScoped, err := loadClusterScoped(filepath.Join(dir, clusterScopedFileName))
	if err != nil {
		return nil, err
	}
	return FromEntries(kinds, clusterScoped)
}

func loadKinds(path string) ([]KindEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &coreerr.ConfigCorrupt{Path: path, Err: err}
	}
	var kinds []KindEntry
	if err := yaml.Unmarshal(data, &kinds); err != nil {
		return nil, &coreerr.ConfigCorrupt{Path: path, Err: err}
	}
	return kinds, nil
}

func loadClusterScoped(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &coreerr.ConfigCorrupt{Path: path, Err: err}
	}
	var names []string
	if err := yaml.Unmarshal(data, &names); err != nil {
		return nil, &coreerr.ConfigCorrupt{Path: path, Err: err}
	}
	return names, nil
}

// Store persists r's current state to the two files in dir, using
// write-then-rename so a reader never observes a half-written file. Both files are written with permission 0o644 and stable key
// order (Entries/ClusterScoped already sort).
func Store(dir string, r *Registry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(dir, kindsFileName), r.Entries()); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(dir, clusterScopedFileName), r.ClusterScoped()); err != nil {
		return err
	}
	return nil
}

// writeAtomic marshals v as YAML and writes it to path via a temp file in
// the same directory followed by os.Rename, so the rename is guaranteed to
// be on the same filesystem as the target and partial writes never land in
// the target's place.
func writeAtomic(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
