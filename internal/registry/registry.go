// Package registry maps game mode IDs to factories. Modes register
// themselves from init() so the platform can list and create them without
// importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is a pure, tick-driven game. It never touches the terminal: the
// platform maps keys to actions, calls Step at a fixed rate and renders
// into a core.Screen. Implementations are used from one goroutine.
type Game interface {
	// ID is the stable identifier of the mode (e.g. "marathon", "sprint").
	// The CLI accepts it as an argument and the score table keys runs by it.
	ID() string

	// Title is the display name shown in menus and score tables.
	Title() string

	// Reset starts a fresh game. It is called before the first Step and
	// again on every restart. cfg carries the screen size the game should
	// fit and the seed that makes the run reproducible.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of 1/TickRate seconds,
	// applying the actions held in this frame first. The returned state
	// is the same as a following call to State.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. The platform may call it
	// any number of times between steps; it must not change game state.
	Render(dst *core.Screen)

	// State returns the score summary and the paused and game over flags.
	State() core.GameState
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting. The platform calls Resize instead of Reset when the
// window changes mid-game; width and height are the space left for the game.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string // value accepted by Create
	Title string // captured from a throwaway instance at Register time
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory under id. Modes call it from init().
// It creates one instance to read the title, and panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := factories[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(factories))
	for id := range factories {
		infos = append(infos, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
