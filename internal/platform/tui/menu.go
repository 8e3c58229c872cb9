package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/storage"
)

// pickerItem is one selectable puzzle with its formatted list line.
type pickerItem struct {
	puzzle *puzzle.Puzzle
	label  string
}

// PickerModel is the Bubble Tea model for the puzzle picker.
type PickerModel struct {
	items       []pickerItem
	cursor      int
	width       int
	height      int
	store       *storage.Store
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *puzzle.Puzzle // Set when the player picks a puzzle
	openResults bool           // True if the player pressed Tab for the results board
}

// NewPickerModel creates a picker over the given puzzles. Best results are
// looked up once at construction, so returning from a run shows fresh
// numbers.
func NewPickerModel(puzzles []*puzzle.Puzzle, store *storage.Store, cfg core.RuntimeConfig) PickerModel {
	items := make([]pickerItem, 0, len(puzzles))
	for _, pz := range puzzles {
		items = append(items, pickerItem{
			puzzle: pz,
			label:  pickerLabel(pz, bestSteps(store, pz.ID)),
		})
	}

	return PickerModel{
		items:     items,
		cursor:    0,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// bestSteps returns the best completed step count for a puzzle, or 0 when
// it has not been solved yet.
func bestSteps(store *storage.Store, puzzleID string) int {
	if store == nil {
		return 0
	}
	best, err := store.BestRun(puzzleID)
	if err != nil || best == nil {
		return 0
	}
	return best.Steps
}

// pickerLabel formats one list line: algorithm, size, tier, optimal length
// and the player's best.
func pickerLabel(pz *puzzle.Puzzle, best int) string {
	tier := pz.SkillTier
	if tier == "" {
		tier = "-"
	}
	difficulty := pz.Difficulty
	if difficulty == "" {
		difficulty = "-"
	}
	bestLabel := "unplayed"
	if best > 0 {
		bestLabel = fmt.Sprintf("best %d", best)
	}
	return fmt.Sprintf("%-4s %3dx%-3d %-12s %-7s optimal %-4d %s",
		pz.Algorithm, pz.Grid.W, pz.Grid.H, tier, difficulty, pz.Optimal(), bestLabel)
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for picker navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].puzzle
			return m, tea.Quit // Exit picker to start the run
		}

	case MenuActionResults:
		m.openResults = true
		return m, tea.Quit // Exit picker to show the results board
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "  M A Z E T R A C E  "
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Select a puzzle (%d available)", len(m.items))
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	// The list scrolls when the pool outgrows the window.
	visible := m.height - 9
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.items) {
		end = len(m.items)
	}

	if start > 0 {
		b.WriteString(centerText(fmt.Sprintf("... %d more above", start), m.width))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.items[i].label, m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(fmt.Sprintf("... %d more below", len(m.items)-end), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Results  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected puzzle, or nil if none selected.
func (m PickerModel) Selected() *puzzle.Puzzle {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsResults returns true if user requested the results board.
func (m PickerModel) WantsResults() bool {
	return m.openResults
}

// Config returns the current runtime config (may have been updated by resize).
func (m PickerModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// PickerResult holds the result of running the picker.
type PickerResult struct {
	Puzzle       *puzzle.Puzzle
	Config       core.RuntimeConfig
	WantsResults bool
	Quit         bool
}

// RunPicker runs the picker and returns the selection result.
func RunPicker(puzzles []*puzzle.Puzzle, store *storage.Store, cfg core.RuntimeConfig) (PickerResult, error) {
	model := NewPickerModel(puzzles, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{Config: cfg}, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return PickerResult{Config: cfg, Quit: true}, nil
	}

	result := PickerResult{
		Config: m.Config(),
	}

	if m.WantsResults() {
		result.WantsResults = true
		return result, nil
	}

	if m.IsQuitting() {
		result.Quit = true
		return result, nil
	}

	if m.Selected() != nil {
		result.Puzzle = m.Selected()
	} else {
		result.Quit = true
	}

	return result, nil
}
