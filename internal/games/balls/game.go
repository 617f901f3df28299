package balls

import (
	"errors"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/ballpop/internal/config"
	"github.com/vovakirdan/ballpop/internal/core"
	"github.com/vovakirdan/ballpop/internal/registry"
)

const (
	// Each board unit is one terminal row and two terminal columns, so a
	// unit-diameter ball looks round.
	colsPerUnit = 2

	minScreenW = 24
	minScreenH = 8

	burstTicks = 12
)

// Package-level variables for config
var (
	selectedConfigPath string
	selectedPreset     = config.DifficultyFixed
)

// SetConfigPath sets a custom config file path. Empty means use the search order.
func SetConfigPath(path string) {
	selectedConfigPath = path
}

// SetDifficultyPreset sets the palette preset applied on top of the loaded config.
func SetDifficultyPreset(p config.DifficultyPreset) {
	selectedPreset = p
}

// GetDifficultyPreset returns the currently selected preset.
func GetDifficultyPreset() config.DifficultyPreset {
	return selectedPreset
}

type burst struct {
	pos   core.CellPos
	color core.Color
	ticks int
}

// Game adapts a Session to the arcade platform: it maps cursor moves and
// mouse clicks onto pieces and turns session events into HUD state.
type Game struct {
	conf    config.BallsConfig
	loaded  bool
	session *Session
	matcher Finder
	best    core.BestScoreStore
	logger  *log.Logger
	printer *message.Printer
	rng     *rand.Rand
	tick    uint64

	screenW int
	screenH int

	// Cursor position as indexes into the layout grid.
	cursorCol int
	cursorRow int

	scoreLabel string
	bestLabel  string
	comboTicks int
	comboLen   int // Banner duration in ticks
	comboSize  int
	bursts     []burst
	noMoves    bool

	restartBtn core.Rect
	paused     bool
	tooSmall   bool
	err        error
}

// New creates a ball game with an in-memory best score.
func New() *Game {
	return &Game{
		best:    core.NewMemoryBestScores(0),
		logger:  log.New(io.Discard),
		printer: message.NewPrinter(language.English),
	}
}

func init() {
	registry.Register("balls", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "balls"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Balls"
}

// BindBestScores replaces the best score store. Call before Reset.
func (g *Game) BindBestScores(store core.BestScoreStore) {
	if store != nil {
		g.best = store
	}
}

// SetLogger sets the logger passed on to the session.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// Reset builds a fresh board sized to the screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.comboTicks = 0
	g.bursts = nil
	g.err = nil
	g.session = nil

	g.checkScreenSize()
	if g.tooSmall {
		return
	}
	g.restartBtn = core.NewRect(g.screenW-len(restartLabel)-1, g.screenH-1, len(restartLabel), 1)

	if !g.loaded {
		g.loadConfig()
	}

	g.comboTicksFor(cfg.TickRate)
	if err := g.startSession(); err != nil {
		g.err = err
		g.logger.Error("could not start session", "err", err)
		return
	}
	g.centerCursor()
}

func (g *Game) loadConfig() {
	conf, err := config.LoadBalls(selectedConfigPath)
	if err != nil {
		g.logger.Warn("using default ball config", "path", selectedConfigPath, "err", err)
		conf = config.DefaultBallsConfig()
	}
	config.ApplyBallsPreset(&conf, selectedPreset)
	g.conf = conf
	g.loaded = true
}

// comboTicksFor keeps the big combo banner up for three quarters of a second.
func (g *Game) comboTicksFor(tickRate int) {
	if tickRate <= 0 {
		tickRate = 60
	}
	g.comboLen = tickRate * 3 / 4
}

func (g *Game) startSession() error {
	palette, err := ParsePalette(g.conf.Palette)
	if err != nil {
		return err
	}
	finder, err := FinderByName(g.conf.Matcher)
	if err != nil {
		return err
	}

	sess, err := NewSession(SessionConfig{
		Layout:         g.layout(),
		Palette:        palette,
		ComboThreshold: g.conf.Combo.ThresholdFor(g.screenW),
		Rand:           g.rng,
		Finder:         finder,
		Best:           g.best,
	}, WithLogger(g.logger))
	if err != nil {
		return err
	}

	g.session = sess
	g.matcher = finder
	sess.Subscribe(g.handleEvent)
	g.scoreLabel = g.printer.Sprintf("SCORE: %d", sess.Score())
	g.bestLabel = g.printer.Sprintf("Highest: %d", sess.Best())
	g.noMoves = !hasMoves(sess.Pieces(), finder)
	return nil
}

// layout converts the screen size into board units.
func (g *Game) layout() Layout {
	return Layout{
		Bounds:   core.NewBounds(0, 0, float64(g.screenW)/colsPerUnit, float64(g.screenH)),
		Margin:   g.conf.Board.Margin,
		Diameter: g.conf.Board.Diameter,
	}
}

func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

func (g *Game) centerCursor() {
	l := g.session.Layout()
	g.cursorCol = len(l.Columns()) / 2
	g.cursorRow = len(l.Rows()) / 2
}

// handleEvent turns session events into presentation state.
func (g *Game) handleEvent(e Event) {
	switch ev := e.(type) {
	case PiecesRemoved:
		for _, p := range ev.Pieces {
			g.bursts = append(g.bursts, burst{
				pos:   g.toCell(p.Pos),
				color: p.Color.ScreenColor(),
				ticks: burstTicks,
			})
		}
	case ScoreChanged:
		g.scoreLabel = g.printer.Sprintf("SCORE: %d", ev.Score)
	case BestScoreChanged:
		g.bestLabel = g.printer.Sprintf("Highest: %d", ev.Best)
	case BigComboTriggered:
		g.comboTicks = g.comboLen
		g.comboSize = ev.Size
	case BoardReset:
		g.bursts = nil
		g.comboTicks = 0
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall || g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.advanceEffects()

	res := core.StepResult{}
	if in.Has(core.ActionRestart) {
		res.FinishedScore = g.restart()
	}

	g.moveCursor(in)
	if in.Has(core.ActionSelect) {
		g.selectPoint(g.cursorPoint())
	}

	for _, c := range in.Clicks {
		if g.restartBtn.Contains(c.X, c.Y) {
			res.FinishedScore = g.restart()
			continue
		}
		p := g.toBoard(c)
		if piece, ok := PieceAt(g.session.Pieces(), p); ok {
			g.snapCursor(piece.Pos)
			g.selectPoint(piece.Pos)
		}
	}

	res.State = g.State()
	return res
}

func (g *Game) advanceEffects() {
	if g.comboTicks > 0 {
		g.comboTicks--
	}
	live := g.bursts[:0]
	for _, b := range g.bursts {
		b.ticks--
		if b.ticks > 0 {
			live = append(live, b)
		}
	}
	g.bursts = live
}

// restart starts a new round and returns the score of the round it ended.
func (g *Game) restart() int {
	finished := g.session.Score()
	if err := g.session.Restart(); err != nil {
		g.logger.Error("restart failed", "err", err)
		return 0
	}
	g.noMoves = !hasMoves(g.session.Pieces(), g.matcher)
	return finished
}

func (g *Game) moveCursor(in core.InputFrame) {
	l := g.session.Layout()
	cols, rows := len(l.Columns()), len(l.Rows())
	if cols == 0 || rows == 0 {
		return
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursorCol--
	case in.Has(core.ActionRight):
		g.cursorCol++
	case in.Has(core.ActionUp):
		g.cursorRow++
	case in.Has(core.ActionDown):
		g.cursorRow--
	}
	g.cursorCol = core.Clamp(g.cursorCol, 0, cols-1)
	g.cursorRow = core.Clamp(g.cursorRow, 0, rows-1)
}

// cursorPoint returns the board position under the cursor.
func (g *Game) cursorPoint() core.Vec {
	l := g.session.Layout()
	cols, rows := l.Columns(), l.Rows()
	if len(cols) == 0 || len(rows) == 0 {
		return core.Vec{}
	}
	return core.V(cols[g.cursorCol], rows[g.cursorRow])
}

// snapCursor moves the cursor to the grid slot nearest p.
func (g *Game) snapCursor(p core.Vec) {
	l := g.session.Layout()
	g.cursorCol = nearestIndex(l.Columns(), p.X)
	g.cursorRow = nearestIndex(l.Rows(), p.Y)
}

func nearestIndex(values []float64, v float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, x := range values {
		if d := math.Abs(x - v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (g *Game) selectPoint(p core.Vec) {
	piece, ok := PieceAt(g.session.Pieces(), p)
	if !ok {
		return
	}
	out, err := g.session.SelectAt(piece.ID)
	if err != nil {
		if !errors.Is(err, ErrPieceNotFound) {
			g.logger.Warn("selection failed", "piece", piece.ID, "err", err)
		}
		return
	}
	if !out.Removed {
		return
	}
	if g.conf.Settle {
		Settle(g.session.Pieces(), g.session.Layout())
	}
	g.noMoves = !hasMoves(g.session.Pieces(), g.matcher)
}

// toCell maps a board position to a screen cell. Board y grows upward.
func (g *Game) toCell(p core.Vec) core.CellPos {
	return core.CellPos{
		X: int(math.Round(p.X * colsPerUnit)),
		Y: g.screenH - 1 - int(math.Round(p.Y)),
	}
}

// toBoard maps the center of a screen cell to a board position.
func (g *Game) toBoard(c core.CellPos) core.Vec {
	return core.V(
		(float64(c.X)+0.5)/colsPerUnit,
		float64(g.screenH-1-c.Y),
	)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused || g.tooSmall}
	if g.session != nil {
		st.Score = g.session.Score()
		st.BestScore = g.session.Best()
	}
	return st
}
