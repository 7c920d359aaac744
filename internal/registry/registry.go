// Package registry provides a global registry of playable snake variants.
// Variants register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is the contract between a snake engine and its hosts.
// Engines contain pure logic with no external dependencies (especially no
// Bubble Tea). The host owns input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "classic", "wrap").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary of the rules.
	Description() string

	// Reset starts a new game with the given configuration.
	// Returns a *core.ConfigurationError when the board cannot host a game.
	Reset(cfg core.RuntimeConfig) error

	// SetDirection requests a direction for the next tick.
	SetDirection(d core.Direction)

	// Tick advances the simulation by one step.
	// The host calls it every Snapshot().TickInterval.
	Tick() core.TickResult

	// Snapshot returns a read-only copy of the state for rendering.
	Snapshot() core.Snapshot
}

// GameInfo contains metadata about a registered variant.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a new, not yet started game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	order     []string
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from an init() function.
// Panics if a variant with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", id))
	}

	factories[id] = f
	order = append(order, id)

	g := f()
	infos[id] = GameInfo{
		ID:          id,
		Title:       g.Title(),
		Description: g.Description(),
	}
}

// List returns all registered variants in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, infos[id])
	}
	return result
}

// IDs returns the registered variant IDs, sorted.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]string, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create instantiates a new game by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown variant %q", id)
	}

	return f(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Lookup returns the metadata of a registered variant.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
