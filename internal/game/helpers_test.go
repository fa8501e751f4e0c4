package game

import (
	"fmt"
	"math/rand"
	"testing"

	"shellgame/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingRenderer は描画要求を記録するだけのテスト用 Renderer
type recordingRenderer struct {
	calls     []string
	overlays  []Overlay
	cues      []Cue
	placed    map[int]Point
	removed   []int
	drag      []bool
	selection int
	lockLabel string
	lockOn    bool
	status    string
	phase     string
	overlay   *Overlay
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{placed: make(map[int]Point)}
}

func (r *recordingRenderer) RenderPhase(label string) {
	r.phase = label
	r.calls = append(r.calls, "phase:"+label)
}

func (r *recordingRenderer) RenderCounters(round, alive int) {
	r.calls = append(r.calls, fmt.Sprintf("counters:%d/%d", round, alive))
}

func (r *recordingRenderer) RenderStatus(text string) {
	r.status = text
}

func (r *recordingRenderer) RenderLockButton(label string, enabled bool) {
	r.lockLabel = label
	r.lockOn = enabled
}

func (r *recordingRenderer) RenderSelection(caseID int) {
	r.selection = caseID
}

func (r *recordingRenderer) ShowOverlay(o Overlay) {
	r.overlays = append(r.overlays, o)
	r.overlay = &o
}

func (r *recordingRenderer) HideOverlay() {
	r.overlay = nil
}

func (r *recordingRenderer) Cue(c Cue) {
	r.cues = append(r.cues, c)
}

func (r *recordingRenderer) PlaceCase(caseID int, pos Point, dragging bool) {
	r.placed[caseID] = pos
}

func (r *recordingRenderer) RemoveCase(caseID int) {
	delete(r.placed, caseID)
	r.removed = append(r.removed, caseID)
}

func (r *recordingRenderer) SetDragEnabled(enabled bool) {
	r.drag = append(r.drag, enabled)
}

func (r *recordingRenderer) overlayCount(kind OverlayKind) int {
	n := 0
	for _, o := range r.overlays {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

type testGame struct {
	engine *Engine
	sched  *ManualScheduler
	render *recordingRenderer
}

func newTestGame(t *testing.T) *testGame {
	t.Helper()
	sched := NewManualScheduler()
	render := newRecordingRenderer()
	e := NewEngine(zap.NewNop(),
		WithScheduler(sched),
		WithRenderer(render),
		WithRand(rand.New(rand.NewSource(7))),
	)
	e.Start()
	return &testGame{engine: e, sched: sched, render: render}
}

// toLookAway は名前入力とコイントスを済ませ、guesser を最初の当てる側にする
func (g *testGame) toLookAway(t *testing.T, guesser models.Seat) {
	t.Helper()
	g.engine.NamesConfirmed("Alice", "Bob")
	require.Equal(t, models.PhaseCoin, g.engine.State().Phase)
	g.engine.CoinFlipSkipped()
	g.engine.assignRoles(guesser)
	g.sched.Advance(CoinResultHold)
	require.Equal(t, models.PhaseLookAwayForMove, g.engine.State().Phase)
}

// playRound は並べ替えなしで当たりを決め、予想を確定するところまで進める
func (g *testGame) playRound(t *testing.T, winning, guess int) {
	t.Helper()
	e := g.engine
	if e.State().RevealCaseID != 0 {
		g.sched.Advance(WrongRevealDelay)
		e.ContinuePressed()
	}
	e.ReadyAcknowledged()
	require.Equal(t, models.PhaseMove, e.State().Phase)
	e.DoneMoving()
	e.CaseSelected(winning)
	e.LockInPressed()
	require.Equal(t, models.PhasePassToGuess, e.State().Phase)
	e.ReadyAcknowledged()
	require.Equal(t, models.PhaseGuess, e.State().Phase)
	e.CaseSelected(guess)
	e.LockInPressed()
}

func slotCenter(t *testing.T, a *Assignment, slotID int) Point {
	t.Helper()
	s, ok := a.Slot(slotID)
	require.True(t, ok)
	return s.Center
}
