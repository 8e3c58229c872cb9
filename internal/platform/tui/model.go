package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/game"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/resource"
	"github.com/vovakirdan/mazetrace/internal/storage"
)

// Model is the Bubble Tea model for one puzzle. It drives the engine,
// records finished and abandoned attempts and credits assist rewards on a
// win. The wallet is handed in from outside so a session can carry one
// budget across puzzles.
type Model struct {
	engine     *game.Engine
	grantor    resource.Grantor
	rewards    map[resource.Kind]int
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	runID     string
	startedAt time.Time
	runSaved  bool // Whether the current attempt has been recorded

	backToMenu bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given puzzle.
func NewModel(pz *puzzle.Puzzle, store *storage.Store, grantor resource.Grantor, rewards map[resource.Kind]int, cfg core.RuntimeConfig) Model {
	engine := game.New(pz, grantor)
	engine.Reset(cfg)

	return Model{
		engine:     engine,
		grantor:    grantor,
		rewards:    rewards,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		runID:      uuid.NewString(),
		startedAt:  time.Now(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRun(false)
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving the puzzle is only offered once the run is paused or won.
	// A session model intercepts this; standalone play just exits.
	if action := m.keyMapper.MapKeyToMenuAction(msg); action == MenuActionBack && (m.gameState.Won || m.gameState.Paused) {
		m.finishRun(false)
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The run survives a resize;
// the engine just recenters the maze.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.engine.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// A restart abandons the current attempt; record it before the engine
	// wipes the state.
	restarted := m.inputFrame.Has(core.ActionRestart)
	if restarted {
		m.finishRun(false)
	}

	result := m.engine.Step(m.inputFrame)
	m.gameState = result.State

	if restarted {
		m.newAttempt()
	}

	// Record the win once and credit the assist rewards.
	if m.gameState.Won && !m.runSaved {
		m.finishRun(true)
		for kind, n := range m.rewards {
			m.grantor.Earn(kind, n)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finishRun records the current attempt once. Abandoned attempts with no
// movement are not worth a row.
func (m *Model) finishRun(completed bool) {
	if m.runSaved {
		return
	}
	state := m.engine.State()
	if !completed && state.Steps == 0 {
		return
	}
	m.runSaved = true

	if m.store == nil {
		return
	}
	pz := m.engine.Puzzle()
	//nolint:errcheck // Best-effort save, play continues regardless
	m.store.SaveRun(storage.RunEntry{
		RunID:      m.runID,
		PuzzleID:   pz.ID,
		Algorithm:  pz.Algorithm,
		Width:      pz.Grid.W,
		Height:     pz.Grid.H,
		SkillTier:  pz.SkillTier,
		Difficulty: pz.Difficulty,
		Steps:      state.Steps,
		Optimal:    state.Optimal,
		HintsUsed:  state.HintsUsed,
		SlicesUsed: state.SlicesUsed,
		Completed:  completed,
		DurationMS: time.Since(m.startedAt).Milliseconds(),
	})
}

// newAttempt rolls the run identity for the attempt that just started.
func (m *Model) newAttempt() {
	m.runID = uuid.NewString()
	m.startedAt = time.Now()
	m.runSaved = false
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.engine.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".mazetrace", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.engine.Puzzle().ID, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.engine.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the player requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one puzzle in the local terminal and blocks until the player
// leaves it.
func Run(pz *puzzle.Puzzle, store *storage.Store, grantor resource.Grantor, rewards map[resource.Kind]int, cfg core.RuntimeConfig) error {
	model := NewModel(pz, store, grantor, rewards, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
