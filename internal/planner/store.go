package planner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// WritePlans writes plans to path as YAML. The write holds an exclusive
// lock on "<path>.lock" and goes through a temp file and rename, so readers
// never see a partial plan.
func WritePlans(path string, plans []*Plan) error {
	data, err := yaml.Marshal(&document{Version: documentVersion, Plans: plans})
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create plan directory %s: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock plan file %s: %w", path, err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// atomicWrite writes data to a temp file in path's directory and renames it
// over path.
func atomicWrite(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".plan-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// ReadPlans loads a plan file written by [WritePlans], taking a shared lock
// while reading. When the lock file cannot be opened (a read-only directory,
// or a plan copied without its lock) the file is read unlocked; the rename
// in [WritePlans] still keeps the read from seeing a partial plan.
func ReadPlans(path string) ([]*Plan, error) {
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err == nil {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse plan file %s: %w", path, err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("plan file %s: unsupported version %d", path, doc.Version)
	}
	return doc.Plans, nil
}
