// Package game is the playable maze engine: it owns the run state of a
// single puzzle attempt (cursor, walked path, divergence, assists) and
// renders it to a screen buffer. The driving loop feeds it input frames;
// the engine itself never touches the terminal, the clock or the store.
package game

import (
	"fmt"

	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/resource"
	"github.com/vovakirdan/mazetrace/internal/solve"
	"github.com/vovakirdan/mazetrace/internal/track"
)

// noticeTicks is how long a status notice stays on screen (~1.5s at 60 FPS).
const noticeTicks = 90

// Engine runs one puzzle. The maze and reference solution are read-only;
// all mutable state belongs to the current attempt and is rebuilt by Reset.
type Engine struct {
	pz       *puzzle.Puzzle
	grantor  resource.Grantor
	expanded [][]bool // cached render form of the grid

	cfg core.RuntimeConfig

	// Path state. cells[0] is the start; after k accepted moves
	// len(cells) == k+1 and cells[k] is the cursor position.
	cursor     maze.Coord
	cells      []maze.Coord
	moves      []maze.Dir
	divergence int // first move off the reference solution, -1 while on track

	steps      int // accepted moves this attempt, undos included
	hintsUsed  int
	slicesUsed int

	// Active hint window, as cells to overlay. hintUntil is the solution
	// index past the window's end; the overlay clears once confirmed
	// progress reaches it.
	hintCells []maze.Coord
	hintUntil int

	notice     string
	noticeLeft int

	won      bool
	paused   bool
	tooSmall bool

	hudHeight  int
	mapOffsetX int
	mapOffsetY int
}

// New creates an engine for the given puzzle. A nil grantor plays in
// relaxed mode with unlimited assists.
func New(pz *puzzle.Puzzle, grantor resource.Grantor) *Engine {
	if grantor == nil {
		grantor = resource.Unlimited{}
	}
	e := &Engine{
		pz:       pz,
		grantor:  grantor,
		expanded: pz.Grid.Expanded(),
	}
	e.Reset(core.DefaultConfig())
	return e
}

// Puzzle returns the puzzle this engine runs.
func (e *Engine) Puzzle() *puzzle.Puzzle {
	return e.pz
}

// Title returns the display name for headers and the results board.
func (e *Engine) Title() string {
	return fmt.Sprintf("mazetrace %s %dx%d", e.pz.Algorithm, e.pz.Grid.W, e.pz.Grid.H)
}

// Reset starts a fresh attempt at the same puzzle. The assist budget is
// not refunded: it belongs to the session, not the attempt.
func (e *Engine) Reset(cfg core.RuntimeConfig) {
	e.cfg = cfg
	e.cursor = e.pz.Grid.Start()
	e.cells = append(e.cells[:0], e.cursor)
	e.moves = e.moves[:0]
	e.divergence = -1
	e.steps = 0
	e.hintsUsed = 0
	e.slicesUsed = 0
	e.clearHint()
	e.notice = ""
	e.noticeLeft = 0
	e.won = false
	e.paused = false
	e.hudHeight = 2
	e.layout()
}

// Resize adapts the engine to a new screen size without touching the
// attempt in progress.
func (e *Engine) Resize(w, h int) {
	e.cfg.ScreenW = w
	e.cfg.ScreenH = h
	e.layout()
}

// layout recomputes the maze placement and the too-small flag.
func (e *Engine) layout() {
	ew := 2*e.pz.Grid.W + 1
	eh := 2*e.pz.Grid.H + 1

	requiredW := ew + 2
	requiredH := eh + e.hudHeight + 1
	if e.cfg.ScreenW < requiredW || e.cfg.ScreenH < requiredH {
		e.tooSmall = true
		return
	}
	e.tooSmall = false

	e.mapOffsetX = (e.cfg.ScreenW - ew) / 2
	e.mapOffsetY = e.hudHeight
}

// Step advances the engine by one tick.
func (e *Engine) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) {
		e.Reset(e.cfg)
		return core.StepResult{State: e.State()}
	}

	if input.Has(core.ActionPause) && !e.won {
		e.paused = !e.paused
	}

	if e.won || e.paused || e.tooSmall {
		return core.StepResult{State: e.State()}
	}

	if e.noticeLeft > 0 {
		e.noticeLeft--
	}

	if input.Has(core.ActionHint) {
		e.requestHint()
	}
	if input.Has(core.ActionSlice) {
		e.requestSlice()
	}

	e.processMove(input)

	return core.StepResult{State: e.State()}
}

// processMove applies at most one movement action per frame.
func (e *Engine) processMove(input core.InputFrame) {
	var d maze.Dir
	switch {
	case input.Has(core.ActionUp):
		d = maze.North
	case input.Has(core.ActionDown):
		d = maze.South
	case input.Has(core.ActionLeft):
		d = maze.West
	case input.Has(core.ActionRight):
		d = maze.East
	default:
		return
	}
	e.applyMove(d)
}

// applyMove walks one cell if the passage is open. A move into a wall is
// swallowed here: no state changes, nothing surfaces. Stepping back onto
// the previous cell undoes the last move instead of extending the path.
func (e *Engine) applyMove(d maze.Dir) {
	if !e.pz.Grid.Open(e.cursor, d) {
		return
	}
	next := e.cursor.Step(d)
	e.steps++

	if n := len(e.moves); n > 0 && next.Equal(e.cells[n-1]) {
		e.moves = e.moves[:n-1]
		e.cells = e.cells[:n]
	} else {
		e.moves = append(e.moves, d)
		e.cells = append(e.cells, next)
	}
	e.cursor = next
	e.divergence = track.FirstDivergence(e.moves, e.pz.Solution)

	if e.hintUntil > 0 && track.Progress(e.moves, e.pz.Solution) >= e.hintUntil {
		e.clearHint()
	}

	if e.cursor.Equal(e.pz.Grid.Goal()) {
		e.won = true
		e.clearHint()
	}
}

// requestHint consumes one hint and reveals the next stretch of the
// reference solution, anchored at the confirmed progress and capped at the
// next checkpoint.
func (e *Engine) requestHint() {
	ref := e.pz.Solution
	progress := track.Progress(e.moves, ref)

	limit := solve.NextCheckpoint(e.pz.Checkpoints, progress)
	if limit <= progress {
		// Records with missing or stale checkpoints still get hints.
		limit = len(ref)
	}

	window := track.HintWindow(ref, progress, e.divergence, limit)
	if len(window) == 0 {
		e.notify("Nothing left to reveal")
		return
	}
	if !e.grantor.Grant(resource.Hint) {
		e.notify("No hints left")
		return
	}
	e.hintsUsed++

	// The window starts at the confirmed progress: a diverged player's
	// progress is the divergence point itself.
	at := e.pz.Grid.Start()
	for i := 0; i < progress; i++ {
		at = at.Step(ref[i])
	}
	e.hintCells = append(e.hintCells[:0], at)
	for _, d := range window {
		at = at.Step(d)
		e.hintCells = append(e.hintCells, at)
	}
	e.hintUntil = progress + len(window)
}

// requestSlice consumes one slice and cuts the walked path back to the
// last correct cell. On track it is a no-op and consumes nothing.
func (e *Engine) requestSlice() {
	if e.divergence < 0 {
		e.notify("On track, nothing to slice")
		return
	}
	if !e.grantor.Grant(resource.Slice) {
		e.notify("No slices left")
		return
	}
	e.slicesUsed++

	div := e.divergence
	e.moves = e.moves[:div]
	e.cells = e.cells[:div+1]
	e.cursor = e.cells[div]
	e.divergence = track.FirstDivergence(e.moves, e.pz.Solution)
}

func (e *Engine) clearHint() {
	e.hintCells = e.hintCells[:0]
	e.hintUntil = 0
}

func (e *Engine) notify(text string) {
	e.notice = text
	e.noticeLeft = noticeTicks
}

// Render draws the maze, the walked path and any overlays.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()

	e.renderHUD(dst)

	if e.tooSmall {
		e.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	e.renderMaze(dst)
	e.renderPath(dst)
	e.renderHintOverlay(dst)

	// Player cursor on top of everything else.
	px, py := e.cellScreen(e.cursor)
	dst.SetColored(px, py, '@', core.ColorBrightCyan)

	if e.noticeLeft > 0 {
		dst.DrawTextColored(1, dst.Height()-1, e.notice, core.ColorBrightYellow)
	}

	switch {
	case e.won:
		e.renderOverlay(dst,
			fmt.Sprintf("Solved in %d steps (optimal %d)", e.steps, e.pz.Optimal()),
			"Press R to replay")
	case e.paused:
		e.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// cellScreen maps a maze cell to its screen position: cell centers sit at
// the odd coordinates of the expanded grid.
func (e *Engine) cellScreen(c maze.Coord) (int, int) {
	return e.mapOffsetX + 2*c.X + 1, e.mapOffsetY + 2*c.Y + 1
}

// renderHUD draws the top status bar.
func (e *Engine) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" mazetrace  %s %dx%d  Steps: %d  Hints: %s  Slices: %s",
		e.pz.Algorithm, e.pz.Grid.W, e.pz.Grid.H, e.steps,
		balanceLabel(e.grantor.Balance(resource.Hint)),
		balanceLabel(e.grantor.Balance(resource.Slice)))
	dst.DrawText(0, 0, hud)

	if e.divergence >= 0 && !e.won {
		dst.DrawTextColored(len(hud)+2, 0, "OFF TRACK", core.ColorBrightRed)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func balanceLabel(n int) string {
	if n < 0 {
		return "inf"
	}
	return fmt.Sprintf("%d", n)
}

// renderMaze draws the walls of the expanded grid and the exit marker.
func (e *Engine) renderMaze(dst *core.Screen) {
	for y, row := range e.expanded {
		for x, passable := range row {
			if !passable {
				dst.SetColored(e.mapOffsetX+x, e.mapOffsetY+y, '█', core.ColorGray)
			}
		}
	}
	gx, gy := e.cellScreen(e.pz.Grid.Goal())
	dst.SetColored(gx, gy, '>', core.ColorBrightMagenta)
}

// renderPath draws the walked path: the confirmed prefix in green, the
// diverged suffix in red. Midpoints between cells are filled so the trail
// reads as a line.
func (e *Engine) renderPath(dst *core.Screen) {
	if len(e.cells) == 0 {
		return
	}
	sx, sy := e.cellScreen(e.cells[0])
	dst.SetColored(sx, sy, '·', core.ColorGreen)

	for i := 1; i < len(e.cells); i++ {
		color := core.ColorGreen
		if e.divergence >= 0 && i > e.divergence {
			color = core.ColorBrightRed
		}
		a, b := e.cells[i-1], e.cells[i]
		dst.SetColored(e.mapOffsetX+a.X+b.X+1, e.mapOffsetY+a.Y+b.Y+1, '·', color)
		cx, cy := e.cellScreen(b)
		dst.SetColored(cx, cy, '·', color)
	}
}

// renderHintOverlay draws the revealed stretch of the solution.
func (e *Engine) renderHintOverlay(dst *core.Screen) {
	if e.hintUntil == 0 {
		return
	}
	for i, c := range e.hintCells {
		cx, cy := e.cellScreen(c)
		dst.SetColored(cx, cy, '*', core.ColorBrightYellow)
		if i > 0 {
			a := e.hintCells[i-1]
			dst.SetColored(e.mapOffsetX+a.X+c.X+1, e.mapOffsetY+a.Y+c.Y+1, '*', core.ColorBrightYellow)
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (e *Engine) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// State returns the current attempt state.
func (e *Engine) State() core.GameState {
	return core.GameState{
		Steps:      e.steps,
		PathLen:    len(e.moves),
		Optimal:    e.pz.Optimal(),
		HintsUsed:  e.hintsUsed,
		SlicesUsed: e.slicesUsed,
		Diverged:   e.divergence >= 0,
		Won:        e.won,
		Paused:     e.paused,
	}
}
