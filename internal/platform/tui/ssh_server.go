// SSH serving support via Wish: one mazetrace session per connection.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/mazetrace/internal/config"
	"github.com/vovakirdan/mazetrace/internal/core"
	"github.com/vovakirdan/mazetrace/internal/puzzle"
	"github.com/vovakirdan/mazetrace/internal/resource"
	"github.com/vovakirdan/mazetrace/internal/storage"
	"github.com/vovakirdan/mazetrace/internal/wire"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.mazetrace/host_key.
	HostKeyPath string

	// DBPath is the path to the runs database.
	DBPath string

	// FeedPath is an explicit puzzle feed. Empty means the usual lookup
	// order ending at the bundled feed.
	FeedPath string

	// Resources is the assist budget every session starts with.
	Resources config.ResourcesConfig

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.mazetrace/mazetrace.db",
		Resources:   config.DefaultConfig().Resources,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server for mazetrace.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	pool   *puzzle.Pool
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The puzzle feed is loaded once at startup and shared by every session.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mazetrace-ssh",
	})

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		// Continue without storage
	}

	// Load the puzzle feed; a server without puzzles is useless.
	pool, skipped, err := puzzle.Load(wire.NewDecoder(), cfg.FeedPath)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot load puzzle feed: %w", err)
	}
	for _, skipErr := range skipped {
		logger.Warn("skipped feed record", "error", skipErr)
	}
	if pool.Len() == 0 {
		if store != nil {
			store.Close()
		}
		return nil, errors.New("puzzle feed has no playable records")
	}
	logger.Info("puzzle feed loaded", "puzzles", pool.Len())

	srv := &SSHServer{
		config: cfg,
		store:  store,
		pool:   pool,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".mazetrace", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Create runtime config from PTY size
	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.pool, s.store, s.config.Resources, cfg, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Session screens.
const (
	sessionPicker = iota
	sessionGame
	sessionResults
)

// SessionModel manages the full session flow: picker -> run -> picker, with
// the results board off the picker. One assist wallet lives for the whole
// session, so wins fund hints for later puzzles.
type SessionModel struct {
	pool     *puzzle.Pool
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	wallet   *resource.Wallet
	rewards  map[resource.Kind]int

	mode     int
	picker   PickerModel
	game     *Model
	results  ResultsModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(pool *puzzle.Pool, store *storage.Store, res config.ResourcesConfig, cfg core.RuntimeConfig, username string) SessionModel {
	wallet := resource.NewWallet(
		map[resource.Kind]int{
			resource.Hint:  res.Hints.Initial,
			resource.Slice: res.Slices.Initial,
		},
		map[resource.Kind]int{
			resource.Hint:  res.Hints.Max,
			resource.Slice: res.Slices.Max,
		},
	)

	return SessionModel{
		pool:     pool,
		store:    store,
		config:   cfg,
		username: username,
		wallet:   wallet,
		rewards: map[resource.Kind]int{
			resource.Hint:  res.Hints.Reward,
			resource.Slice: res.Slices.Reward,
		},
		mode:   sessionPicker,
		picker: NewPickerModel(pool.All(), store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.mode {
	case sessionGame:
		return m.updateGame(msg)
	case sessionResults:
		return m.updateResults(msg)
	default:
		return m.updatePicker(msg)
	}
}

// updatePicker handles updates when on the picker screen.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newPicker, cmd := m.picker.Update(msg)
	if pickerModel, ok := newPicker.(PickerModel); ok {
		m.picker = pickerModel
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.picker.WantsResults() {
		m.mode = sessionResults
		m.results = NewResultsModel(m.pool.All(), m.store, m.config.ScreenW, m.config.ScreenH)
		return m, m.results.Init()
	}

	if selected := m.picker.Selected(); selected != nil {
		m.config = m.picker.Config() // Get possibly updated config from resize
		gameModel := NewModel(selected, m.store, m.wallet, m.rewards, m.config)
		m.game = &gameModel
		m.mode = sessionGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when a run is active. The run model's own
// quit command is swallowed when it only means "back to the picker".
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.mode = sessionPicker
		m.game = nil
		m.picker = NewPickerModel(m.pool.All(), m.store, m.config)
		return m, m.picker.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateResults handles updates when the results board is open.
func (m SessionModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	newResults, cmd := m.results.Update(msg)
	if resultsModel, ok := newResults.(ResultsModel); ok {
		m.results = resultsModel
	}

	if m.results.IsGoingBack() {
		m.mode = sessionPicker
		m.picker = NewPickerModel(m.pool.All(), m.store, m.config)
		return m, m.picker.Init()
	}

	if m.results.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case sessionGame:
		if m.game != nil {
			return m.game.View()
		}
	case sessionResults:
		return m.results.View()
	}

	return m.picker.View()
}
