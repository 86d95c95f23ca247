package game

import (
	"fmt"
	"sort"

	"github.com/NeoGalaxy/terminity/internal/core"
)

// Factory constructs a fresh instance of a game. Every activation gets
// a new instance; terminated games are never reused.
type Factory func() Game

// Info describes a registered game.
type Info struct {
	Name  string
	Title string
}

// Registry maps game names to factories. It is populated once at
// startup from a fixed list and passed explicitly to the lifecycle
// manager; there is no package-level instance.
type Registry struct {
	factories map[string]Factory
	titles    map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a game factory under the given name. Registering the
// same name twice is a programming error and returns an error rather
// than silently replacing the factory.
func (r *Registry) Register(name, title string, f Factory) error {
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("game %q already registered", name)
	}
	r.factories[name] = f
	r.titles[name] = title
	return nil
}

// Create instantiates a new game by name. Returns a ConfigError if the
// name is not registered; no game is constructed in that case.
func (r *Registry) Create(name string) (Game, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, &core.ConfigError{Name: name}
	}
	return f(), nil
}

// Exists reports whether a game with the given name is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Title returns the display title for a registered game, or the name
// itself if unknown.
func (r *Registry) Title(name string) string {
	if t, ok := r.titles[name]; ok {
		return t
	}
	return name
}

// List returns all registered games sorted by name.
func (r *Registry) List() []Info {
	result := make([]Info, 0, len(r.factories))
	for name := range r.factories {
		result = append(result, Info{Name: name, Title: r.titles[name]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Clear removes every registered factory. Called at process exit so
// that no factory outlives the session that owned it.
func (r *Registry) Clear() {
	r.factories = make(map[string]Factory)
	r.titles = make(map[string]string)
}
