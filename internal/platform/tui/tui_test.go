package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ballpop/internal/core"
	"github.com/vovakirdan/ballpop/internal/storage"
	"github.com/vovakirdan/ballpop/internal/storage/redisstore"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runes("w"), core.ActionUp, false},
		{"j", runes("j"), core.ActionDown, false},
		{"a", runes("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"restart", runes("r"), core.ActionRestart, false},
		{"pause", runes("p"), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"quit", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 6, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)

	assert.Equal(t, []core.CellPos{{X: 3, Y: 5}}, frame.Clicks)
}

// stubGame replays scripted step results and remembers the input it saw.
type stubGame struct {
	results []core.StepResult
	inputs  []core.InputFrame
	resets  int
	best    core.BestScoreStore
	state   core.GameState
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) BindBestScores(s core.BestScoreStore) { g.best = s }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, core.InputFrame{
		Actions: cloneActions(in.Actions),
		Clicks:  append([]core.CellPos(nil), in.Clicks...),
	})
	if len(g.results) == 0 {
		return core.StepResult{State: g.state}
	}
	r := g.results[0]
	g.results = g.results[1:]
	g.state = r.State
	return r
}

func cloneActions(m map[core.Action]bool) map[core.Action]bool {
	out := make(map[core.Action]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type fakeRecorder struct {
	rounds []int
	err    error
}

func (r *fakeRecorder) RecordScore(gameID string, score int) error {
	r.rounds = append(r.rounds, score)
	return r.err
}

func newStubModel(game *stubGame, rec ScoreRecorder, best core.BestScoreStore) Model {
	return NewModel(game, core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1}, Options{
		Recorder: rec,
		Best:     best,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func TestModelBindsBestScores(t *testing.T) {
	game := &stubGame{}
	best := core.NewMemoryBestScores(7)
	newStubModel(game, nil, best)

	assert.Same(t, best, game.best)
}

func TestModelRecordsFinishedRounds(t *testing.T) {
	game := &stubGame{results: []core.StepResult{
		{State: core.GameState{Score: 24}},
		{State: core.GameState{Score: 0}, FinishedScore: 24},
		{State: core.GameState{Score: 8}},
	}}
	rec := &fakeRecorder{}
	m := newStubModel(game, rec, nil)

	for range 3 {
		m = update(t, m, TickMsg(time.Now()))
	}
	assert.Equal(t, []int{24}, rec.rounds)

	// Quitting records the round in progress
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, []int{24, 8}, rec.rounds)
	assert.Empty(t, next.View())
}

func TestModelRecordsGameOverOnce(t *testing.T) {
	over := core.StepResult{State: core.GameState{Score: 40, GameOver: true}}
	game := &stubGame{results: []core.StepResult{over, over, over}}
	rec := &fakeRecorder{}
	m := newStubModel(game, rec, nil)

	for range 3 {
		m = update(t, m, TickMsg(time.Now()))
	}
	assert.Equal(t, []int{40}, rec.rounds)
}

func TestModelRecorderFailureIsNotFatal(t *testing.T) {
	game := &stubGame{results: []core.StepResult{{FinishedScore: 16}}}
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newStubModel(game, rec, nil)

	m = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, []int{16}, rec.rounds)
	assert.Contains(t, m.View(), "stub")
}

func TestModelForwardsInputOncePerTick(t *testing.T) {
	game := &stubGame{}
	m := newStubModel(game, nil, nil)

	m = update(t, m, runes("d"))
	m = update(t, m, tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	require.Len(t, game.inputs, 2)
	assert.True(t, game.inputs[0].Has(core.ActionRight))
	assert.Equal(t, []core.CellPos{{X: 2, Y: 1}}, game.inputs[0].Clicks)
	assert.False(t, game.inputs[1].Has(core.ActionRight))
	assert.Empty(t, game.inputs[1].Clicks)
}

func TestModelResizeEndsRound(t *testing.T) {
	game := &stubGame{results: []core.StepResult{{State: core.GameState{Score: 32}}}}
	rec := &fakeRecorder{}
	m := newStubModel(game, rec, nil)

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})

	assert.Equal(t, []int{32}, rec.rounds)
	assert.Equal(t, 1, game.resets)
	assert.Equal(t, 40, m.screen.Width())
}

func TestModelHelpToggle(t *testing.T) {
	m := newStubModel(&stubGame{}, nil, nil)
	assert.NotContains(t, m.View(), "restart")

	m = update(t, m, runes("?"))
	assert.Contains(t, m.View(), "restart")
}

func TestMultiRecorderJoinsErrors(t *testing.T) {
	ok := &fakeRecorder{}
	failing := &fakeRecorder{err: errors.New("offline")}

	err := multiRecorder{failing, ok}.RecordScore("balls", 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
	assert.Equal(t, []int{12}, ok.rounds)
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.Clear()
	s.SetColored(0, 0, '●', core.ColorRed)
	s.SetColored(1, 0, '●', core.ColorRed)
	s.Set(2, 1, 'x')

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "●●")
	assert.Contains(t, lines[1], "x")
}

type stubRounds struct {
	scores []storage.ScoreEntry
	stats  *storage.GameStats
}

func (s stubRounds) TopScores(string, int) ([]storage.ScoreEntry, error) { return s.scores, nil }
func (s stubRounds) GetGameStats(string) (*storage.GameStats, error)     { return s.stats, nil }

type stubBoard []redisstore.Entry

func (b stubBoard) Leaderboard(context.Context, string, int) ([]redisstore.Entry, error) {
	return b, nil
}

func TestScoreboardTabs(t *testing.T) {
	when := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	rounds := stubRounds{
		scores: []storage.ScoreEntry{{Score: 65536, CreatedAt: when}, {Score: 8, CreatedAt: when}},
		stats:  &storage.GameStats{GamesCount: 2, HighScore: 65536, AvgScore: 32772, LastPlayed: when},
	}
	players := stubBoard{{Player: "alice", Score: 1024}}

	m := NewScoreboardModel("balls", rounds, players, 80, 24)
	view := m.View()
	assert.Contains(t, view, "65,536")
	assert.Contains(t, view, "2 rounds")
	assert.Contains(t, view, "Players")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Equal(t, tabPlayers, m.tab)
	assert.Contains(t, m.View(), "alice")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabRounds, next.(ScoreboardModel).tab)
}

func TestScoreboardWithoutSharedStore(t *testing.T) {
	m := NewScoreboardModel("balls", stubRounds{}, nil, 80, 24)

	assert.Contains(t, m.View(), "No scores recorded yet")
	assert.NotContains(t, m.View(), "Players")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabRounds, next.(ScoreboardModel).tab)
}
