package game

import (
	"strings"
	"testing"

	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/resource"
)

// testPuzzle builds a fixed 3x3 maze by hand. The reference solution is
// E,S,S,E down the middle column; dead-end branches hang south of the start
// and east along the top row. 8 passages over 9 cells, a spanning tree, so
// every wrong turn ends in a dead end the player must walk back out of.
func testPuzzle() *puzzle.Puzzle {
	g := maze.NewGrid(3, 3)
	g.OpenWall(maze.C(0, 0), maze.East)
	g.OpenWall(maze.C(1, 0), maze.South)
	g.OpenWall(maze.C(1, 1), maze.South)
	g.OpenWall(maze.C(1, 2), maze.East)
	g.OpenWall(maze.C(0, 0), maze.South)
	g.OpenWall(maze.C(0, 1), maze.South)
	g.OpenWall(maze.C(1, 0), maze.East)
	g.OpenWall(maze.C(2, 0), maze.South)

	return &puzzle.Puzzle{
		ID:          "fixture",
		Algorithm:   "rb",
		Grid:        g,
		Solution:    []maze.Dir{maze.East, maze.South, maze.South, maze.East},
		Checkpoints: []int{4},
		SkillTier:   "beginner",
		Difficulty:  "easy",
	}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

func press(e *Engine, actions ...core.Action) core.StepResult {
	input := core.NewInputFrame()
	for _, a := range actions {
		input.Set(a)
	}
	return e.Step(input)
}

func TestWalkSolutionWins(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	press(e, core.ActionRight)
	press(e, core.ActionDown)
	press(e, core.ActionDown)
	res := press(e, core.ActionRight)

	if !res.State.Won {
		t.Fatal("walking the reference solution should win")
	}
	if res.State.Steps != 4 {
		t.Errorf("Steps = %d, expected 4", res.State.Steps)
	}
	if res.State.PathLen != 4 {
		t.Errorf("PathLen = %d, expected 4", res.State.PathLen)
	}
	if res.State.Diverged {
		t.Error("a clean solve should not end diverged")
	}
}

func TestInvalidMoveRejected(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	// North from the start is the boundary wall.
	res := press(e, core.ActionUp)

	if res.State.Steps != 0 {
		t.Errorf("blocked move should not count a step, got %d", res.State.Steps)
	}
	if res.State.PathLen != 0 {
		t.Errorf("blocked move should not extend the path, got %d", res.State.PathLen)
	}
	if !e.cursor.Equal(e.pz.Grid.Start()) {
		t.Errorf("cursor moved to %v on a blocked move", e.cursor)
	}
}

func TestBacktrackUndoesLastMove(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	press(e, core.ActionRight)
	res := press(e, core.ActionLeft)

	if res.State.PathLen != 0 {
		t.Errorf("walking back should pop the move, PathLen = %d", res.State.PathLen)
	}
	if res.State.Steps != 2 {
		t.Errorf("both moves count as steps, got %d", res.State.Steps)
	}
	if res.State.Diverged {
		t.Error("an empty path is never diverged")
	}
	if !e.cursor.Equal(e.pz.Grid.Start()) {
		t.Errorf("cursor should be back at the start, got %v", e.cursor)
	}
}

func TestDivergenceTracking(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	// South from the start enters the side branch; the reference goes East.
	res := press(e, core.ActionDown)

	if !res.State.Diverged {
		t.Fatal("leaving the reference path should set Diverged")
	}
	if e.divergence != 0 {
		t.Errorf("divergence = %d, expected 0", e.divergence)
	}

	// Walking back clears it.
	res = press(e, core.ActionUp)
	if res.State.Diverged {
		t.Error("backtracking to the start should clear Diverged")
	}
}

func TestSliceCutsBackToReference(t *testing.T) {
	wallet := resource.NewWallet(map[resource.Kind]int{resource.Slice: 1}, nil)
	e := New(testPuzzle(), wallet)
	e.Reset(testConfig())

	// One correct move, then two into the dead-end branch east of it.
	press(e, core.ActionRight)
	press(e, core.ActionRight)
	press(e, core.ActionDown)

	if got := e.State(); !got.Diverged || got.PathLen != 3 {
		t.Fatalf("setup failed, state = %+v", got)
	}

	res := press(e, core.ActionSlice)

	if res.State.PathLen != 1 {
		t.Errorf("slice should keep the correct prefix, PathLen = %d", res.State.PathLen)
	}
	if res.State.Diverged {
		t.Error("slice should clear the divergence")
	}
	if res.State.SlicesUsed != 1 {
		t.Errorf("SlicesUsed = %d, expected 1", res.State.SlicesUsed)
	}
	if !e.cursor.Equal(maze.C(1, 0)) {
		t.Errorf("cursor should sit on the last correct cell, got %v", e.cursor)
	}
	if wallet.Balance(resource.Slice) != 0 {
		t.Errorf("slice balance = %d, expected 0", wallet.Balance(resource.Slice))
	}
}

func TestSliceOnTrackConsumesNothing(t *testing.T) {
	wallet := resource.NewWallet(map[resource.Kind]int{resource.Slice: 1}, nil)
	e := New(testPuzzle(), wallet)
	e.Reset(testConfig())

	press(e, core.ActionRight)
	res := press(e, core.ActionSlice)

	if res.State.SlicesUsed != 0 {
		t.Errorf("on-track slice should be a no-op, SlicesUsed = %d", res.State.SlicesUsed)
	}
	if res.State.PathLen != 1 {
		t.Errorf("on-track slice should not touch the path, PathLen = %d", res.State.PathLen)
	}
	if wallet.Balance(resource.Slice) != 1 {
		t.Errorf("on-track slice should not consume, balance = %d", wallet.Balance(resource.Slice))
	}
	if e.notice == "" {
		t.Error("on-track slice should post a notice")
	}
}

func TestSliceDeniedWhenBroke(t *testing.T) {
	wallet := resource.NewWallet(nil, nil)
	e := New(testPuzzle(), wallet)
	e.Reset(testConfig())

	press(e, core.ActionDown)
	res := press(e, core.ActionSlice)

	if res.State.SlicesUsed != 0 {
		t.Errorf("denied slice should not count, SlicesUsed = %d", res.State.SlicesUsed)
	}
	if !res.State.Diverged {
		t.Error("denied slice should leave the divergence in place")
	}
	if res.State.PathLen != 1 {
		t.Errorf("denied slice should not truncate, PathLen = %d", res.State.PathLen)
	}
}

func TestHintRevealsWindow(t *testing.T) {
	wallet := resource.NewWallet(map[resource.Kind]int{resource.Hint: 2}, nil)
	e := New(testPuzzle(), wallet)
	e.Reset(testConfig())

	res := press(e, core.ActionHint)

	if res.State.HintsUsed != 1 {
		t.Fatalf("HintsUsed = %d, expected 1", res.State.HintsUsed)
	}
	if wallet.Balance(resource.Hint) != 1 {
		t.Errorf("hint balance = %d, expected 1", wallet.Balance(resource.Hint))
	}

	// The whole 4-move solution fits into one short window, so the overlay
	// covers start through goal.
	if e.hintUntil != 4 {
		t.Errorf("hintUntil = %d, expected 4", e.hintUntil)
	}
	want := []maze.Coord{maze.C(0, 0), maze.C(1, 0), maze.C(1, 1), maze.C(1, 2), maze.C(2, 2)}
	if len(e.hintCells) != len(want) {
		t.Fatalf("hint overlay has %d cells, expected %d", len(e.hintCells), len(want))
	}
	for i, c := range want {
		if !e.hintCells[i].Equal(c) {
			t.Errorf("hintCells[%d] = %v, expected %v", i, e.hintCells[i], c)
		}
	}
}

func TestHintOverlayClearsWhenWalkedPast(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	press(e, core.ActionHint)
	if e.hintUntil == 0 {
		t.Fatal("hint should be active")
	}

	press(e, core.ActionRight)
	press(e, core.ActionDown)
	press(e, core.ActionDown)
	press(e, core.ActionRight)

	if e.hintUntil != 0 {
		t.Error("finishing the revealed stretch should clear the overlay")
	}
}

func TestHintDeniedWhenBroke(t *testing.T) {
	wallet := resource.NewWallet(nil, nil)
	e := New(testPuzzle(), wallet)
	e.Reset(testConfig())

	res := press(e, core.ActionHint)

	if res.State.HintsUsed != 0 {
		t.Errorf("denied hint should not count, HintsUsed = %d", res.State.HintsUsed)
	}
	if e.hintUntil != 0 {
		t.Error("denied hint should not reveal anything")
	}
	if e.notice == "" {
		t.Error("denied hint should post a notice")
	}
}

func TestHintWithoutCheckpointsFallsBackToFullPath(t *testing.T) {
	pz := testPuzzle()
	pz.Checkpoints = nil
	e := New(pz, nil)
	e.Reset(testConfig())

	press(e, core.ActionHint)

	if e.hintUntil != 4 {
		t.Errorf("hintUntil = %d, expected the full solution length", e.hintUntil)
	}
}

func TestRestartKeepsWalletSpent(t *testing.T) {
	wallet := resource.NewWallet(map[resource.Kind]int{resource.Hint: 1}, nil)
	e := New(testPuzzle(), wallet)
	e.Reset(testConfig())

	press(e, core.ActionHint)
	press(e, core.ActionRight)
	res := press(e, core.ActionRestart)

	if res.State.Steps != 0 || res.State.PathLen != 0 || res.State.HintsUsed != 0 {
		t.Errorf("restart should reset the attempt, state = %+v", res.State)
	}
	if wallet.Balance(resource.Hint) != 0 {
		t.Errorf("restart must not refund assists, balance = %d", wallet.Balance(resource.Hint))
	}
}

func TestPauseBlocksMovement(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	res := press(e, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("pause should toggle on")
	}

	res = press(e, core.ActionRight)
	if res.State.PathLen != 0 {
		t.Error("movement should be ignored while paused")
	}

	press(e, core.ActionPause)
	res = press(e, core.ActionRight)
	if res.State.PathLen != 1 {
		t.Error("movement should resume after unpausing")
	}
}

func TestInputIgnoredAfterWin(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())

	press(e, core.ActionRight)
	press(e, core.ActionDown)
	press(e, core.ActionDown)
	press(e, core.ActionRight)

	res := press(e, core.ActionLeft)
	if res.State.PathLen != 4 || !res.State.Won {
		t.Error("movement after the win should be ignored")
	}

	res = press(e, core.ActionRestart)
	if res.State.Won || res.State.PathLen != 0 {
		t.Error("restart should start a fresh attempt")
	}
}

func TestWindowTooSmall(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(core.RuntimeConfig{ScreenW: 5, ScreenH: 4, TickRate: 60})

	if !e.tooSmall {
		t.Fatal("a 5x4 screen cannot fit a 3x3 maze")
	}

	res := press(e, core.ActionRight)
	if res.State.PathLen != 0 {
		t.Error("movement should be ignored while the window is too small")
	}

	e.Resize(80, 24)
	if e.tooSmall {
		t.Error("resize should lift the too-small state")
	}
	res = press(e, core.ActionRight)
	if res.State.PathLen != 1 {
		t.Error("movement should work after resizing")
	}
}

func TestRender(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())
	press(e, core.ActionRight)

	screen := core.NewScreen(80, 24)
	e.Render(screen)
	content := screen.String()

	if !strings.Contains(content, "mazetrace") {
		t.Error("HUD should name the game")
	}
	if !strings.Contains(content, "@") {
		t.Error("render should show the player cursor")
	}
	if !strings.Contains(content, "█") {
		t.Error("render should show maze walls")
	}
	if !strings.Contains(content, ">") {
		t.Error("render should mark the exit")
	}

	// The walked trail is green, the cursor bright cyan.
	sx, sy := e.cellScreen(maze.C(0, 0))
	if cell := screen.GetCell(sx, sy); cell.Rune != '·' || cell.Color != core.ColorGreen {
		t.Errorf("start cell should carry a green trail dot, got %+v", cell)
	}
	cx, cy := e.cellScreen(e.cursor)
	if cell := screen.GetCell(cx, cy); cell.Rune != '@' || cell.Color != core.ColorBrightCyan {
		t.Errorf("cursor cell = %+v", cell)
	}
}

func TestRenderDivergedTrail(t *testing.T) {
	e := New(testPuzzle(), nil)
	e.Reset(testConfig())
	press(e, core.ActionDown)
	press(e, core.ActionDown)

	screen := core.NewScreen(80, 24)
	e.Render(screen)

	// The first wrong cell sits one step south of the start.
	mx, my := e.cellScreen(maze.C(0, 1))
	if cell := screen.GetCell(mx, my); cell.Color != core.ColorBrightRed {
		t.Errorf("diverged trail should be bright red, got %+v", cell)
	}
	if !strings.Contains(screen.String(), "OFF TRACK") {
		t.Error("HUD should flag the divergence")
	}
}
