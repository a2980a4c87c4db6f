// Package registry provides a global registry for built-in seed patterns.
// Patterns register themselves in init() functions, allowing the CLI and
// the SSH server to look them up by ID without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/termlife/internal/seed"
)

// PatternInfo contains metadata about a registered pattern.
type PatternInfo struct {
	ID          string
	Title       string
	Description string
	Height      int
	Width       int
}

// Factory builds a fresh copy of a pattern.
// Each call must return a new grid, since engines take ownership of it.
type Factory func() (seed.Pattern, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]PatternInfo)
	mu        sync.RWMutex
)

// Register adds a pattern factory to the registry.
// Typically called from an init() function.
// Panics if a pattern with the same ID is already registered or the
// factory fails, since built-in patterns are fixed at compile time.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pattern %q already registered", id))
	}

	// Build once to capture metadata and validate the pattern.
	p, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: pattern %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = PatternInfo{
		ID:          id,
		Title:       p.Name,
		Description: p.Description,
		Height:      p.Grid.Height(),
		Width:       p.Grid.Width(),
	}
}

// List returns information about all registered patterns, sorted by ID.
func List() []PatternInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PatternInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a new instance of a pattern by its ID.
// Returns an error if the pattern ID is not registered.
func Create(id string) (seed.Pattern, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return seed.Pattern{}, fmt.Errorf("registry: unknown pattern %q", id)
	}

	p, err := f()
	if err != nil {
		return seed.Pattern{}, fmt.Errorf("registry: pattern %q: %w", id, err)
	}
	p.Source = "builtin:" + id
	return p, nil
}

// Exists checks if a pattern with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Resolve returns the built-in pattern named ref, or loads ref as a
// pattern file when no built-in has that ID.
func Resolve(ref string) (seed.Pattern, error) {
	if Exists(ref) {
		return Create(ref)
	}
	return seed.Load(ref)
}
