package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ballpop/internal/core"
	"github.com/vovakirdan/ballpop/internal/registry"
)

// ScoreRecorder persists finished rounds. *storage.Store satisfies it.
type ScoreRecorder interface {
	RecordScore(gameID string, score int) error
}

// Options wires persistence and logging into a Model. Every field is optional.
type Options struct {
	Recorder ScoreRecorder
	Best     core.BestScoreStore
	Logger   *log.Logger
	Renderer *lipgloss.Renderer // Output renderer; nil means stdout
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	painter    *Painter
	recorder   ScoreRecorder
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	showHelp   bool
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game and binds the
// optional stores to it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	if b, ok := game.(registry.BestScoreBinder); ok && opts.Best != nil {
		b.BindBestScores(opts.Best)
	}
	if l, ok := game.(registry.LoggerBinder); ok && opts.Logger != nil {
		l.SetLogger(opts.Logger)
	}

	keys := DefaultKeyMap()
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		painter:    NewPainter(opts.Renderer),
		recorder:   opts.Recorder,
		logger:     opts.Logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       help.New(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case msg.String() == "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordRound(m.gameState.Score)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The board is rebuilt for the
// new size, which ends the running round.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.recordRound(m.gameState.Score)
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Games that end rounds themselves are restarted by the platform
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.FinishedScore > 0 {
		m.recordRound(result.FinishedScore)
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordRound(m.gameState.Score)
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRound saves a finished round. Best-effort: failures are logged and
// the game continues.
func (m Model) recordRound(score int) {
	if m.recorder == nil || score <= 0 {
		return
	}
	if err := m.recorder.RecordScore(m.game.ID(), score); err != nil && m.logger != nil {
		m.logger.Warn("could not record score", "game", m.game.ID(), "score", score, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ballpop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := m.painter.Render(m.screen)
	if m.showHelp {
		m.help.ShowAll = true
		out += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return out
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
