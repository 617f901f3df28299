package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/ballpop/internal/storage"
	"github.com/vovakirdan/ballpop/internal/storage/redisstore"
)

const (
	maxScores      = 100 // Max rows to load per tab
	leaderboardTTL = 3 * time.Second
)

// RoundSource lists finished rounds. *storage.Store satisfies it.
type RoundSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// LeaderboardSource lists per-player bests. *redisstore.Store satisfies it.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context, gameID string, limit int) ([]redisstore.Entry, error)
}

type scoreTab int

const (
	tabRounds scoreTab = iota
	tabPlayers
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.Reload, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "switch view"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the local rounds of one game and, when a shared
// store is configured, the per-player leaderboard.
type ScoreboardModel struct {
	gameID   string
	rounds   RoundSource
	players  LeaderboardSource
	tab      scoreTab
	rows     []table.Row
	stats    *storage.GameStats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	printer  *message.Printer
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard for gameID. Either source may be nil.
func NewScoreboardModel(gameID string, rounds RoundSource, players LeaderboardSource, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		gameID:  gameID,
		rounds:  rounds,
		players: players,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		printer: message.NewPrinter(language.English),
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	third := "Date"
	if m.tab == tabPlayers {
		third = "Player"
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: third, Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the active tab and the stats line.
func (m *ScoreboardModel) load() {
	m.err = nil
	m.rows = nil

	if m.rounds != nil {
		stats, err := m.rounds.GetGameStats(m.gameID)
		if err != nil {
			m.err = err
		}
		m.stats = stats
	}

	switch m.tab {
	case tabRounds:
		if m.rounds == nil {
			break
		}
		scores, err := m.rounds.TopScores(m.gameID, maxScores)
		if err != nil {
			m.err = err
			break
		}
		m.rows = lo.Map(scores, func(s storage.ScoreEntry, i int) table.Row {
			return table.Row{fmt.Sprintf("#%d", i+1), m.printer.Sprintf("%d", s.Score), s.CreatedAt.Format("Jan 02 15:04")}
		})

	case tabPlayers:
		if m.players == nil {
			break
		}
		ctx, cancel := context.WithTimeout(context.Background(), leaderboardTTL)
		entries, err := m.players.Leaderboard(ctx, m.gameID, maxScores)
		cancel()
		if err != nil {
			m.err = err
			break
		}
		m.rows = lo.Map(entries, func(e redisstore.Entry, i int) table.Row {
			return table.Row{fmt.Sprintf("#%d", i+1), m.printer.Sprintf("%d", e.Score), e.Player}
		})
	}

	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// tabs lists the views that have a source behind them.
func (m ScoreboardModel) tabs() []scoreTab {
	if m.players == nil {
		return []scoreTab{tabRounds}
	}
	return []scoreTab{tabRounds, tabPlayers}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			tabs := m.tabs()
			idx := lo.IndexOf(tabs, m.tab)
			m.tab = tabs[(idx+1)%len(tabs)]
			m.table = m.createTable()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES - "+strings.ToUpper(m.gameID), m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(helpStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	names := map[scoreTab]string{tabRounds: "Rounds", tabPlayers: "Players"}
	rendered := lo.Map(m.tabs(), func(t scoreTab, _ int) string {
		if t == m.tab {
			return activeTabStyle.Render(names[t])
		}
		return tabStyle.Render(names[t])
	})
	return strings.Join(rendered, " ")
}

func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not load scores:\n" + m.err.Error())
	case len(m.rows) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPop some balls to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return ""
	}
	return m.printer.Sprintf("%d rounds  best %d  avg %.0f  last played %s",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore,
		m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// centerText pads s so it sits in the middle of width columns.
func centerText(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", (width-w)/2) + s
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(gameID string, rounds RoundSource, players LeaderboardSource, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(gameID, rounds, players, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
