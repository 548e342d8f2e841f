package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/backmassage/hdrbatch/internal/config"
	"github.com/backmassage/hdrbatch/internal/logging"
	"github.com/backmassage/hdrbatch/internal/naming"
)

// ErrNoInputs is returned when discovery leaves nothing to plan.
var ErrNoInputs = errors.New("no valid file(s)/folder(s) found")

// LooseSource is the Batch.Source of files given directly on the command line.
const LooseSource = "(files)"

// Batch is one independent grouping unit: the files of a single folder, or
// the loose files named on the command line.
type Batch struct {
	Source string
	Files  []string // naturally sorted
	Bytes  int64
}

// Discover expands items into batches. A folder yields its top-level files,
// or with cfg.Recursive one batch per folder in its tree that holds files.
// Loose files form a final batch. Items that do not exist are skipped with a
// warning; files are kept only if their extension is allowed and their base
// name is not excluded.
func Discover(items []string, cfg *config.Config, log *logging.Logger) ([]Batch, error) {
	var batches []Batch
	loose := Batch{Source: LooseSource}
	seen := make(map[string]bool)

	add := func(b *Batch, path string, size int64) {
		if seen[path] || !cfg.AllowsExtension(path) || cfg.Excluded(filepath.Base(path)) {
			return
		}
		seen[path] = true
		b.Files = append(b.Files, path)
		b.Bytes += size
	}

	for _, item := range items {
		fi, err := os.Stat(item)
		if err != nil {
			log.Warn("Skipping %s: %v", item, err)
			continue
		}
		if !fi.IsDir() {
			add(&loose, item, fi.Size())
			continue
		}

		var found []Batch
		if cfg.Recursive {
			found, err = walkTree(item, add)
		} else {
			var b Batch
			b, err = readFolder(item, add)
			found = []Batch{b}
		}
		if err != nil {
			log.Warn("Skipping %s: %v", item, err)
			continue
		}
		for _, b := range found {
			if len(b.Files) > 0 {
				batches = append(batches, b)
			}
		}
	}
	if len(loose.Files) > 0 {
		batches = append(batches, loose)
	}
	if len(batches) == 0 {
		return nil, ErrNoInputs
	}

	for i := range batches {
		batches[i].Files = naming.SortNatural(batches[i].Files)
	}
	return batches, nil
}

type addFunc func(b *Batch, path string, size int64)

// readFolder collects the regular files directly inside dir.
func readFolder(dir string, add addFunc) (Batch, error) {
	b := Batch{Source: dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return b, err
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		add(&b, filepath.Join(dir, e.Name()), info.Size())
	}
	return b, nil
}

// walkTree returns one batch per directory under root, in walk order.
func walkTree(root string, add addFunc) ([]Batch, error) {
	var batches []Batch
	index := make(map[string]int)
	root = filepath.Clean(root)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			index[path] = len(batches)
			batches = append(batches, Batch{Source: path})
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		add(&batches[index[filepath.Dir(path)]], path, info.Size())
		return nil
	})
	return batches, err
}
