package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
)

// FilterSelection holds the pool filter chosen by the player.
// Empty fields match everything.
type FilterSelection struct {
	Tier       string
	Difficulty string
}

// filterOption is one selectable filter value with its match count.
type filterOption struct {
	value string
	label string
}

// FilterModel lets the player narrow the pool: first by skill tier, then by
// difficulty within that tier.
type FilterModel struct {
	puzzles      []*puzzle.Puzzle
	tierOptions  []filterOption
	diffOptions  []filterOption
	cursor       int
	diffCursor   int
	inDifficulty bool
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	selection    FilterSelection
	choosing     bool
	quitting     bool
	back         bool
}

// NewFilterModel creates a new filter selection model over the pool.
func NewFilterModel(puzzles []*puzzle.Puzzle, cfg core.RuntimeConfig) FilterModel {
	m := FilterModel{
		puzzles:   puzzles,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	m.tierOptions = m.buildTierOptions()
	return m
}

// countMatching counts pool puzzles matching the filter. Empty fields
// match everything, like puzzle.Pool.Filter.
func countMatching(puzzles []*puzzle.Puzzle, tier, difficulty string) int {
	n := 0
	for _, pz := range puzzles {
		if tier != "" && pz.SkillTier != tier {
			continue
		}
		if difficulty != "" && pz.Difficulty != difficulty {
			continue
		}
		n++
	}
	return n
}

func (m FilterModel) buildTierOptions() []filterOption {
	options := []filterOption{
		{value: "", label: fmt.Sprintf("All tiers (%d)", len(m.puzzles))},
	}
	for _, tier := range config.SkillTiers {
		options = append(options, filterOption{
			value: string(tier),
			label: fmt.Sprintf("%s (%d)", tier, countMatching(m.puzzles, string(tier), "")),
		})
	}
	return options
}

func (m FilterModel) buildDiffOptions(tier string) []filterOption {
	options := []filterOption{
		{value: "", label: fmt.Sprintf("All difficulties (%d)", countMatching(m.puzzles, tier, ""))},
	}
	for _, difficulty := range config.Difficulties {
		options = append(options, filterOption{
			value: string(difficulty),
			label: fmt.Sprintf("%s (%d)", difficulty, countMatching(m.puzzles, tier, string(difficulty))),
		})
	}
	return options
}

// Init initializes the model.
func (m FilterModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m FilterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m FilterModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inDifficulty {
		return m.handleDifficultyKey(action)
	}
	return m.handleTierKey(action)
}

func (m FilterModel) handleTierKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.tierOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selection.Tier = m.tierOptions[m.cursor].value
		m.diffOptions = m.buildDiffOptions(m.selection.Tier)
		m.diffCursor = 0
		m.inDifficulty = true
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m FilterModel) handleDifficultyKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.diffCursor > 0 {
			m.diffCursor--
		}
	case MenuActionDown:
		if m.diffCursor < len(m.diffOptions)-1 {
			m.diffCursor++
		}
	case MenuActionSelect:
		m.selection.Difficulty = m.diffOptions[m.diffCursor].value
		m.choosing = false
		return m, tea.Quit
	case MenuActionBack:
		m.inDifficulty = false
	}

	return m, nil
}

// View renders the current selection stage.
func (m FilterModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inDifficulty {
		return m.viewOptions("Select difficulty:", m.diffOptions, m.diffCursor)
	}
	return m.viewOptions("Select a skill tier:", m.tierOptions, m.cursor)
}

func (m FilterModel) viewOptions(prompt string, options []filterOption, cursor int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  M A Z E T R A C E  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(prompt, m.width))
	b.WriteString("\n\n")

	for i, option := range options {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		b.WriteString(centerText(marker+option.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m FilterModel) Selected() *FilterSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m FilterModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user backed out of the filter.
func (m FilterModel) WantsBack() bool {
	return m.back
}

// Config returns the current runtime config (may have been updated by resize).
func (m FilterModel) Config() core.RuntimeConfig {
	return m.config
}

// RunFilterSelector runs the filter selection and returns the choice.
// A nil selection means the player backed out or quit.
func RunFilterSelector(puzzles []*puzzle.Puzzle, cfg core.RuntimeConfig) (*FilterSelection, core.RuntimeConfig, error) {
	model := NewFilterModel(puzzles, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(FilterModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, m.Config(), nil
	}

	return m.Selected(), m.Config(), nil
}
