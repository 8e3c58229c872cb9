package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic behavior.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means use current time in platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a maze run.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Steps      int  // Total accepted movements this run, undos included
	PathLen    int  // Length of the currently confirmed path
	Optimal    int  // Length of the reference solution
	HintsUsed  int  // Hints consumed this run
	SlicesUsed int  // Slices consumed this run
	Diverged   bool // Whether the path has left the reference solution
	Won        bool // Whether the goal has been reached
	Paused     bool // Whether the run is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
