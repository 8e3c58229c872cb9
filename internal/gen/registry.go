package gen

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/mazetrace/internal/maze"
)

// Builder carves a maze one atomic step at a time. Step performs the next
// mutation (a carve, a walk step, a backtrack) and returns false once the
// maze is complete; the arena is valid between any two steps. Active
// returns the cells the builder is currently working from, for rendering.
type Builder interface {
	Step() bool
	Done() bool
	Active() []maze.Coord
}

// Factory creates a builder over an arena. Builders draw randomness from
// the arena RNG so a seed fully determines the result.
type Factory func(m *Maze) Builder

// AlgorithmInfo describes a registered carving algorithm.
type AlgorithmInfo struct {
	Tag  string // wire tag stored in puzzle records, e.g. "rb"
	Name string // human-readable name for listings
}

var (
	factories = make(map[string]Factory)
	names     = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a carving algorithm under its wire tag.
// Called from the algorithms' init() functions.
// Panics if the tag is already registered.
func Register(tag, name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[tag]; exists {
		panic(fmt.Sprintf("gen: algorithm %q already registered", tag))
	}
	factories[tag] = f
	names[tag] = name
}

// List returns all registered algorithms, sorted by tag.
func List() []AlgorithmInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]AlgorithmInfo, 0, len(factories))
	for tag := range factories {
		result = append(result, AlgorithmInfo{Tag: tag, Name: names[tag]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Tag < result[j].Tag
	})
	return result
}

// Create instantiates a builder by algorithm tag over the given arena.
func Create(tag string, m *Maze) (Builder, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[tag]
	if !ok {
		return nil, fmt.Errorf("gen: unknown algorithm %q", tag)
	}
	return f(m), nil
}

// Exists checks whether an algorithm tag is registered.
func Exists(tag string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[tag]
	return ok
}

// Build runs a builder to completion and punches the boundary gaps.
// This is the non-animated path; drive the builder yourself to animate.
func Build(tag string, w, h int, seed int64) (*Maze, error) {
	m := NewMaze(w, h, seed)
	b, err := Create(tag, m)
	if err != nil {
		return nil, err
	}
	for b.Step() {
	}
	m.OpenEntrance()
	m.OpenExit()
	return m, nil
}
