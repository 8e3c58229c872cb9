// Package track compares a player's move sequence against a reference
// solution: where they diverge, how far the confirmed progress reaches, and
// which slice of the solution a hint may reveal.
// This package is pure; it knows nothing about grids or rendering.
package track

import "github.com/vovakirdan/mazetrace/internal/maze"

// Hint window sizing: a full window when at least that much solution
// remains, otherwise a short window capped at the remainder.
const (
	hintWindowFull  = 20
	hintWindowShort = 10
)

// FirstDivergence returns the index of the first move where the player left
// the reference solution. A player sequence that is a prefix of the
// reference (or matches it exactly) yields -1. A player sequence that
// matches the whole reference and keeps going yields len(ref): the first
// position with no reference to follow.
func FirstDivergence(player, ref []maze.Dir) int {
	n := len(player)
	if len(ref) < n {
		n = len(ref)
	}
	for i := 0; i < n; i++ {
		if player[i] != ref[i] {
			return i
		}
	}
	if len(player) > len(ref) {
		return len(ref)
	}
	return -1
}

// Progress returns the length of the confirmed correct prefix: the
// divergence index when the player has diverged, otherwise everything
// played so far.
func Progress(player, ref []maze.Dir) int {
	if d := FirstDivergence(player, ref); d >= 0 {
		return d
	}
	return len(player)
}

// HintWindow returns the slice of the reference solution a hint reveals.
// The reference is first clipped to cap entries; progress and a set
// divergence index are clamped into the clipped range and the window starts
// at whichever is further along. At least hintWindowFull remaining moves
// yield a full window; fewer yield at most hintWindowShort. divergence < 0
// means the player has not diverged and only progress anchors the window.
//
// The returned slice aliases ref; callers must not modify it.
func HintWindow(ref []maze.Dir, progress, divergence, cap int) []maze.Dir {
	if cap < 0 {
		cap = 0
	}
	if cap > len(ref) {
		cap = len(ref)
	}
	ref = ref[:cap]

	start := clamp(progress, 0, len(ref))
	if divergence >= 0 {
		if d := clamp(divergence, 0, len(ref)); d > start {
			start = d
		}
	}

	remaining := len(ref) - start
	size := hintWindowFull
	if remaining < hintWindowFull {
		size = hintWindowShort
		if remaining < size {
			size = remaining
		}
	}
	return ref[start : start+size]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
