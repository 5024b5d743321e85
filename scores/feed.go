package scores

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Feed keeps the latest good reading of a score file. Reads happen on the
// goroutine running Run; Latest only copies the cached result.
type Feed struct {
	path   string
	limits []float64

	mu      sync.RWMutex
	latest  Pair
	ok      bool
	version uint64
}

// OpenFeed performs the initial read. A missing or malformed file is not an
// error: the feed simply has no reading until the file becomes valid.
func OpenFeed(path string, limits []float64) *Feed {
	f := &Feed{path: filepath.Clean(path), limits: append([]float64(nil), limits...)}
	if err := f.Reload(); err != nil && !os.IsNotExist(err) {
		log.Printf("scores: initial read %s: %v", f.path, err)
	}
	return f
}

func (f *Feed) Path() string { return f.path }

// Reload reads and parses the file. On failure the previous reading stays.
func (f *Feed) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	r, err := Parse(string(data))
	if err != nil {
		return fmt.Errorf("scores: parse %s: %w", f.path, err)
	}
	pair := r.Pair(f.limits)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !pair.HasSecond() && f.ok {
		pair.Second = f.latest.Second
	}
	f.latest = pair
	f.ok = true
	f.version++
	return nil
}

func (f *Feed) Latest() (Pair, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.ok
}

func (f *Feed) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// Run reloads the file for every change notification until ctx is done or
// changes is closed.
func (f *Feed) Run(ctx context.Context, changes <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-changes:
			if !ok {
				return nil
			}
			if filepath.Clean(name) != f.path {
				continue
			}
			if err := f.Reload(); err != nil {
				if !os.IsNotExist(err) {
					log.Printf("scores: %v", err)
				}
				continue
			}
			log.Printf("scores: reloaded %s", f.path)
		}
	}
}
