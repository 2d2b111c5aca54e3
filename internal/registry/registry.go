// Package registry keeps the playable games by ID. The CLI registers one
// game per loaded level at startup, and frontends create fresh instances
// from the registered factories.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gravity-maze/internal/core"
)

// Game is the core interface that the maze game implements.
// Games contain pure logic with no external dependencies (no Bubble Tea,
// no Ebiten). The platform handles input mapping, timing, audio and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "gravity").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Gravity Maze").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when restarting.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Returns the result of this tick including requested side effects.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Order int
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

// Registry maps game IDs to factories. The zero value is not usable;
// create one with New.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a game factory to the registry.
// Returns an error if a game with the same ID is already registered.
func (r *Registry) Register(order int, f Factory) error {
	g := f()
	id := g.ID()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("registry: game %q already registered", id)
	}
	r.entries[id] = entry{
		info:    GameInfo{ID: id, Title: g.Title(), Order: order},
		factory: f,
	}
	return nil
}

// List returns information about all registered games, sorted by order then ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func (r *Registry) Create(id string) (Game, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[id]
	return ok
}

// Len returns the number of registered games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
