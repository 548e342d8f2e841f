package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// CollisionResolver hands out unique output paths within one planning run.
// Two brackets whose first exposures share a stem (IMG_0001.cr2 and
// IMG_0001.jpg, or the same name in two folders merged into one output
// directory) would otherwise write the same HDR file. All methods are
// goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // output path -> bracket key that claimed it
	counters map[string]int    // requested path -> next numeric suffix
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns requested if it is free or already owned by key, and
// otherwise the first free "<stem>-N<ext>" variant, N starting at 2.
func (cr *CollisionResolver) Resolve(key, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if owner, ok := cr.owners[requested]; !ok || owner == key {
		cr.owners[requested] = key
		return requested
	}

	ext := filepath.Ext(requested)
	stem := strings.TrimSuffix(requested, ext)
	n := cr.counters[requested]
	if n < 2 {
		n = 2
	}
	for ; ; n++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, n, ext)
		if owner, ok := cr.owners[candidate]; !ok || owner == key {
			cr.owners[candidate] = key
			cr.counters[requested] = n + 1
			return candidate
		}
	}
}
