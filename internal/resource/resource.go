// Package resource tracks the assist budget for maze runs.
// The engine asks a Grantor before applying an assist and credits rewards
// back through it, so play modes can swap budget policies without touching
// game logic.
package resource

// Kind identifies a grantable assist.
type Kind int

const (
	// Hint reveals the next stretch of the reference solution.
	Hint Kind = iota

	// Slice cuts the player's path back to the last correct cell.
	Slice

	kindCount
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Hint:
		return "hint"
	case Slice:
		return "slice"
	default:
		return "unknown"
	}
}

// Kinds lists every assist kind.
var Kinds = []Kind{Hint, Slice}

// Grantor hands out assists during a run.
type Grantor interface {
	// Grant consumes one assist of the given kind. It returns false when
	// the budget is exhausted; the caller then refuses the assist.
	Grant(k Kind) bool

	// Balance reports how many assists of the kind remain.
	// A negative balance means unlimited.
	Balance(k Kind) int

	// Earn credits n assists of the kind, respecting any cap.
	Earn(k Kind, n int)
}
