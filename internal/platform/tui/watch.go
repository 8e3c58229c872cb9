package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/gen"
	"github.com/vovakirdan/mazetrace/internal/maze"
	"github.com/vovakirdan/mazetrace/internal/solve"
)

// Watch phases: carve the maze, then run the solver over it.
const (
	watchCarving = iota
	watchSolving
	watchDone
)

// watchStepsPerTick is the animation speed in builder or solver steps per
// frame. At 60 ticks per second this carves a beginner maze in a couple of
// seconds.
const watchStepsPerTick = 3

// WatchModel animates maze generation and the solve for forge --watch.
type WatchModel struct {
	tag     string
	arena   *gen.Maze
	builder gen.Builder

	grid     *maze.Grid
	expanded [][]bool
	solver   *solve.Solver
	path     []maze.Dir

	screen   *core.Screen
	config   core.RuntimeConfig
	phase    int
	quitting bool
}

// NewWatchModel prepares the animation for one maze.
func NewWatchModel(tag string, w, h int, seed int64, cfg core.RuntimeConfig) (WatchModel, error) {
	arena := gen.NewMaze(w, h, seed)
	builder, err := gen.Create(tag, arena)
	if err != nil {
		return WatchModel{}, err
	}

	return WatchModel{
		tag:     tag,
		arena:   arena,
		builder: builder,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		phase:   watchCarving,
	}, nil
}

// Init starts the tick loop.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.phase == watchDone {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.advance()
	}

	return m, nil
}

// advance runs a few animation steps and moves between phases.
func (m WatchModel) advance() (tea.Model, tea.Cmd) {
	switch m.phase {
	case watchCarving:
		for i := 0; i < watchStepsPerTick && m.builder.Step(); i++ {
		}
		if m.builder.Done() {
			m.arena.OpenEntrance()
			m.arena.OpenExit()
			m.grid = m.arena.Grid()
			m.expanded = m.grid.Expanded()
			m.solver = solve.New(m.grid)
			m.phase = watchSolving
		}

	case watchSolving:
		for i := 0; i < watchStepsPerTick && m.solver.Step(); i++ {
		}
		if m.solver.Done() {
			m.path, _ = m.solver.Result()
			m.phase = watchDone
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// View renders the animation frame.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return RenderScreen(m.screen)
}

// render draws the whole frame into the screen buffer.
func (m WatchModel) render() {
	dst := m.screen
	dst.Clear()

	const hudHeight = 2
	ew, eh := 2*m.arena.W+1, 2*m.arena.H+1

	dst.DrawText(0, 0, m.statusLine())
	dst.DrawHLine(0, 1, dst.Width(), '─')

	if ew+2 > dst.Width() || eh+hudHeight+1 > dst.Height() {
		dst.DrawTextCentered(dst.Height()/2, "Window too small for this maze")
		return
	}

	ox := (dst.Width() - ew) / 2
	oy := hudHeight

	switch m.phase {
	case watchCarving:
		m.renderArena(ox, oy, ew, eh)
	default:
		m.renderSearch(ox, oy)
	}
}

// statusLine is the single HUD line above the maze.
func (m WatchModel) statusLine() string {
	switch m.phase {
	case watchCarving:
		return fmt.Sprintf(" mazetrace forge  %s %dx%d  carving %d/%d",
			m.tag, m.arena.W, m.arena.H, m.arena.VisitedCount(), m.arena.CellCount())
	case watchSolving:
		return fmt.Sprintf(" mazetrace forge  %s %dx%d  solving", m.tag, m.arena.W, m.arena.H)
	default:
		return fmt.Sprintf(" mazetrace forge  %s %dx%d  optimal %d  press q to close",
			m.tag, m.arena.W, m.arena.H, len(m.path))
	}
}

// renderArena draws the maze mid-carve: every wall slot starts solid and
// carved passages knock holes into it, so unreached regions stay filled.
func (m WatchModel) renderArena(ox, oy, ew, eh int) {
	dst := m.screen

	for y := 0; y < eh; y++ {
		for x := 0; x < ew; x++ {
			dst.SetColored(ox+x, oy+y, '█', core.ColorGray)
		}
	}

	for y := 0; y < m.arena.H; y++ {
		for x := 0; x < m.arena.W; x++ {
			c := maze.C(x, y)
			sx, sy := ox+2*x+1, oy+2*y+1
			if m.arena.Visited(c) {
				dst.Set(sx, sy, ' ')
			}
			if m.arena.Passage(c, maze.East) {
				dst.Set(sx+1, sy, ' ')
			}
			if m.arena.Passage(c, maze.South) {
				dst.Set(sx, sy+1, ' ')
			}
		}
	}

	for _, c := range m.builder.Active() {
		dst.SetColored(ox+2*c.X+1, oy+2*c.Y+1, '*', core.ColorBrightYellow)
	}
}

// renderSearch draws the finished maze with the solver's progress on top.
func (m WatchModel) renderSearch(ox, oy int) {
	dst := m.screen

	for y, row := range m.expanded {
		for x, passable := range row {
			if !passable {
				dst.SetColored(ox+x, oy+y, '█', core.ColorGray)
			}
		}
	}

	for y := 0; y < m.grid.H; y++ {
		for x := 0; x < m.grid.W; x++ {
			c := maze.C(x, y)
			if m.solver.Expanded(c) {
				dst.SetColored(ox+2*x+1, oy+2*y+1, '·', core.ColorBlue)
			}
		}
	}

	if m.phase == watchSolving {
		for _, c := range m.solver.Frontier() {
			dst.SetColored(ox+2*c.X+1, oy+2*c.Y+1, '*', core.ColorBrightYellow)
		}
	} else {
		at := m.grid.Start()
		dst.SetColored(ox+2*at.X+1, oy+2*at.Y+1, '·', core.ColorGreen)
		for _, d := range m.path {
			next := at.Step(d)
			midX := ox + at.X + next.X + 1
			midY := oy + at.Y + next.Y + 1
			dst.SetColored(midX, midY, '·', core.ColorGreen)
			dst.SetColored(ox+2*next.X+1, oy+2*next.Y+1, '·', core.ColorGreen)
			at = next
		}
	}

	goal := m.grid.Goal()
	dst.SetColored(ox+2*goal.X+1, oy+2*goal.Y+1, '>', core.ColorBrightMagenta)
}

// RunWatch animates one maze being carved and solved, blocking until the
// viewer closes it.
func RunWatch(tag string, w, h int, seed int64, cfg core.RuntimeConfig) error {
	model, err := NewWatchModel(tag, w, h, seed, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
