package game

import (
	"testing"

	"shellgame/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartShowsNamesDialog(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, models.PhaseNames, g.engine.State().Phase)
	require.NotNil(t, g.render.overlay)
	assert.Equal(t, OverlayNames, g.render.overlay.Kind)
	assert.Equal(t, "—", g.render.phase)
	assert.Len(t, g.render.placed, CaseCount)
	assert.Equal(t, []bool{false}, g.render.drag)
}

func TestNamesConfirmed(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		accepted bool
	}{
		{name: "distinct names", a: "Alice", b: "Bob", accepted: true},
		{name: "trimmed", a: "  Alice ", b: "Bob", accepted: true},
		{name: "empty", a: "", b: "Bob"},
		{name: "whitespace only", a: "   ", b: "Bob"},
		{name: "same ignoring case", a: "alice", b: "ALICE"},
		{name: "same after folding", a: "Émile", b: "éMILE"},
		{name: "too long", a: "abcdefghijklmnopqrs", b: "Bob"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			g.engine.NamesConfirmed(tt.a, tt.b)

			s := g.engine.State()
			if !tt.accepted {
				assert.Equal(t, models.PhaseNames, s.Phase)
				assert.Equal(t, models.Players{}, s.Players)
				return
			}
			assert.Equal(t, models.PhaseCoin, s.Phase)
			assert.Equal(t, "Alice", s.Players.A)
			assert.Equal(t, "Bob", s.Players.B)
			assert.Equal(t, OverlayCoin, g.render.overlay.Kind)
			assert.Equal(t, &models.Players{A: "Alice", B: "Bob"}, g.render.overlay.Names)
		})
	}
}

func TestCoinFlipTimerResolves(t *testing.T) {
	g := newTestGame(t)
	g.engine.NamesConfirmed("Alice", "Bob")

	g.sched.Advance(CoinFlipDelay - 1)
	assert.Equal(t, 0, g.render.overlayCount(OverlayCoinResult))

	g.sched.Advance(1)
	assert.Equal(t, 1, g.render.overlayCount(OverlayCoinResult))
	assert.Equal(t, models.PhaseCoin, g.engine.State().Phase, "result stays visible")

	s := g.engine.State()
	assert.Equal(t, s.CoinWinner, s.Guesser)
	assert.Equal(t, s.Guesser.Other(), s.Hider)

	g.sched.Advance(CoinResultHold)
	assert.Equal(t, models.PhaseLookAwayForMove, g.engine.State().Phase)
	assert.Equal(t, OverlayLookAway, g.render.overlay.Kind)
	assert.Equal(t, s.Hider, g.render.overlay.Seat)
	assert.Equal(t, s.Guesser, g.render.overlay.Other)
}

func TestCoinFlipResolvesOnlyOnce(t *testing.T) {
	g := newTestGame(t)
	g.engine.NamesConfirmed("Alice", "Bob")

	g.engine.CoinFlipSkipped()
	roles := g.engine.State()

	g.engine.CoinFlipSkipped()
	g.engine.CoinFlipResolved()
	g.sched.Advance(CoinFlipDelay)

	assert.Equal(t, 1, g.render.overlayCount(OverlayCoinResult))
	assert.Equal(t, roles.Guesser, g.engine.State().Guesser)
	assert.Equal(t, models.PhaseLookAwayForMove, g.engine.State().Phase)
	assert.Equal(t, 1, g.render.overlayCount(OverlayLookAway))
}

func TestCoinFlipIsRoughlyFair(t *testing.T) {
	wins := map[models.Seat]int{}
	g := newTestGame(t)
	for i := 0; i < 400; i++ {
		g.engine.ResetPressed()
		g.engine.NamesConfirmed("Alice", "Bob")
		g.engine.CoinFlipSkipped()
		wins[g.engine.State().CoinWinner]++
	}
	assert.InDelta(t, 200, wins[models.SeatA], 60)
	assert.Equal(t, 400, wins[models.SeatA]+wins[models.SeatB])
}

func TestMoveArmsDragEveryEntry(t *testing.T) {
	g := newTestGame(t)
	g.toLookAway(t, models.SeatA)

	g.engine.ReadyAcknowledged()
	require.True(t, g.engine.DragArmed())
	require.Equal(t, true, g.render.drag[len(g.render.drag)-1])

	// 同じフェーズへの再遷移でも効果は再適用される
	n := len(g.render.drag)
	g.engine.setPhase(models.PhaseMove)
	require.Len(t, g.render.drag, n+1)
	assert.True(t, g.render.drag[n])

	g.engine.DoneMoving()
	assert.False(t, g.engine.DragArmed())
	assert.False(t, g.render.drag[len(g.render.drag)-1])
}

func TestScenarioHiderMovesAndLocks(t *testing.T) {
	g := newTestGame(t)
	e := g.engine
	g.toLookAway(t, models.SeatA)
	require.Equal(t, models.SeatB, e.State().Hider)

	// 7番を3番スロットへ置いてから、ドラッグで9番スロットへ移す
	require.NoError(t, e.Board().Place(3, 11))
	require.NoError(t, e.Board().Place(7, 3))

	e.ReadyAcknowledged()
	require.Equal(t, models.PhaseMove, e.State().Phase)
	require.NoError(t, e.Board().Place(9, 12))

	e.DragStarted(7, slotCenter(t, e.Board(), 3))
	require.NotNil(t, e.Dragging())
	e.DragMoved(Point{X: 100, Y: 100})
	e.DragReleased(slotCenter(t, e.Board(), 9))

	slotID, _ := e.Board().SlotOf(7)
	assert.Equal(t, 9, slotID)
	assert.Nil(t, e.Dragging())
	require.NoError(t, e.Board().Validate())

	e.DoneMoving()
	assert.Equal(t, models.PhasePickWinner, e.State().Phase)
	assert.Equal(t, "PICK", g.render.phase)
	assert.Equal(t, "Lock Winning Case", g.render.lockLabel)
	assert.False(t, g.render.lockOn)

	e.CaseSelected(7)
	assert.Equal(t, 7, g.render.selection)
	assert.True(t, g.render.lockOn)

	e.LockInPressed()
	s := e.State()
	assert.Equal(t, 7, s.WinningCaseID)
	assert.Equal(t, 0, s.SelectedWinningCaseID)
	assert.Equal(t, models.PhasePassToGuess, s.Phase)
	assert.Equal(t, 0, g.render.selection, "glow cleared before passing the device")
	assert.Equal(t, OverlayPassDevice, g.render.overlay.Kind)
	assert.Equal(t, models.SeatA, g.render.overlay.Seat)
	assert.Equal(t, "Alice", g.render.overlay.Name)
}

func TestLockWinningCaseNeedsSelection(t *testing.T) {
	g := newTestGame(t)
	g.toLookAway(t, models.SeatA)
	g.engine.ReadyAcknowledged()
	g.engine.DoneMoving()

	before := g.engine.Snapshot()
	g.engine.LockInPressed()
	assert.Equal(t, before, g.engine.Snapshot())
}

func TestSelectionRejectsEliminatedCase(t *testing.T) {
	g := newTestGame(t)
	g.toLookAway(t, models.SeatA)
	g.engine.Board().Remove(4)
	g.engine.ReadyAcknowledged()
	g.engine.DoneMoving()

	before := g.engine.Snapshot()
	g.engine.CaseSelected(4)
	g.engine.CaseSelected(99)
	assert.Equal(t, before, g.engine.Snapshot())
}

func TestDoneMovingCommitsActiveDrag(t *testing.T) {
	g := newTestGame(t)
	e := g.engine
	g.toLookAway(t, models.SeatA)
	e.ReadyAcknowledged()

	e.DragStarted(2, slotCenter(t, e.Board(), 2))
	e.DragMoved(slotCenter(t, e.Board(), 14))
	e.DoneMoving()

	assert.Nil(t, e.Dragging())
	slotID, _ := e.Board().SlotOf(2)
	assert.Equal(t, 14, slotID)
	assert.Equal(t, 0, e.Board().Lifted())
	require.NoError(t, e.Board().Validate())
}

func TestDragCancelledCommitsSlot(t *testing.T) {
	g := newTestGame(t)
	e := g.engine
	g.toLookAway(t, models.SeatA)
	e.ReadyAcknowledged()

	e.DragStarted(2, slotCenter(t, e.Board(), 2))
	e.DragMoved(slotCenter(t, e.Board(), 15))
	e.DragCancelled()

	slotID, _ := e.Board().SlotOf(2)
	assert.Equal(t, 15, slotID)
	require.NoError(t, e.Board().Validate())
}

// 各フェーズで許可されていない操作は状態を一切変えない
func TestOutOfPhaseActionsAreNoOps(t *testing.T) {
	type action struct {
		name    string
		phases  []models.Phase
		perform func(e *Engine)
	}
	actions := []action{
		{"namesConfirmed", []models.Phase{models.PhaseNames}, func(e *Engine) { e.NamesConfirmed("Carol", "Dave") }},
		{"coinFlipResolved", []models.Phase{models.PhaseCoin}, func(e *Engine) { e.CoinFlipResolved() }},
		{"coinFlipSkipped", []models.Phase{models.PhaseCoin}, func(e *Engine) { e.CoinFlipSkipped() }},
		{"readyAcknowledged", []models.Phase{models.PhaseLookAwayForMove, models.PhasePassToGuess}, func(e *Engine) { e.ReadyAcknowledged() }},
		{"continue", nil, func(e *Engine) { e.ContinuePressed() }},
		{"doneMoving", []models.Phase{models.PhaseMove}, func(e *Engine) { e.DoneMoving() }},
		{"caseSelected", []models.Phase{models.PhasePickWinner, models.PhaseGuess}, func(e *Engine) { e.CaseSelected(5) }},
		{"lockIn", []models.Phase{models.PhasePickWinner, models.PhaseGuess}, func(e *Engine) { e.LockInPressed() }},
		{"dragStarted", []models.Phase{models.PhaseMove}, func(e *Engine) { e.DragStarted(5, Point{X: 300, Y: 300}) }},
		{"dragMoved", nil, func(e *Engine) { e.DragMoved(Point{X: 10, Y: 10}) }},
		{"dragReleased", nil, func(e *Engine) { e.DragReleased(Point{X: 10, Y: 10}) }},
		{"dragCancelled", nil, func(e *Engine) { e.DragCancelled() }},
		{"playAgain", []models.Phase{models.PhaseWin}, func(e *Engine) { e.PlayAgainPressed() }},
	}

	// 各フェーズまで進めたゲームを作る
	setups := map[models.Phase]func(t *testing.T) *testGame{
		models.PhaseNames: func(t *testing.T) *testGame { return newTestGame(t) },
		models.PhaseCoin: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.engine.NamesConfirmed("Alice", "Bob")
			return g
		},
		models.PhaseLookAwayForMove: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.toLookAway(t, models.SeatA)
			return g
		},
		models.PhaseMove: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.toLookAway(t, models.SeatA)
			g.engine.ReadyAcknowledged()
			return g
		},
		models.PhasePickWinner: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.toLookAway(t, models.SeatA)
			g.engine.ReadyAcknowledged()
			g.engine.DoneMoving()
			g.engine.CaseSelected(3)
			return g
		},
		models.PhasePassToGuess: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.toLookAway(t, models.SeatA)
			g.engine.ReadyAcknowledged()
			g.engine.DoneMoving()
			g.engine.CaseSelected(3)
			g.engine.LockInPressed()
			return g
		},
		models.PhaseGuess: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.toLookAway(t, models.SeatA)
			g.playRound(t, 3, 0)
			g.engine.CaseSelected(8)
			return g
		},
		models.PhaseWin: func(t *testing.T) *testGame {
			g := newTestGame(t)
			g.toLookAway(t, models.SeatA)
			g.playRound(t, 3, 3)
			return g
		},
	}

	for phase, setup := range setups {
		for _, a := range actions {
			allowed := false
			for _, p := range a.phases {
				if p == phase {
					allowed = true
				}
			}
			if allowed {
				continue
			}
			t.Run(string(phase)+"/"+a.name, func(t *testing.T) {
				g := setup(t)
				require.Equal(t, phase, g.engine.State().Phase)

				before := g.engine.Snapshot()
				a.perform(g.engine)
				assert.Equal(t, before, g.engine.Snapshot())
			})
		}
	}
}

func TestLockInDuringMoveIsNoOp(t *testing.T) {
	g := newTestGame(t)
	g.toLookAway(t, models.SeatA)
	g.engine.ReadyAcknowledged()

	before := g.engine.Snapshot()
	g.engine.LockInPressed()
	assert.Equal(t, before, g.engine.Snapshot())
}

func TestBoardResized(t *testing.T) {
	g := newTestGame(t)
	e := g.engine

	e.BoardResized(1000, 800)
	w, h := e.BoardSize()
	assert.Equal(t, 1000.0, w)
	assert.Equal(t, 800.0, h)

	slots := ComputeSlots(1000, 800)
	assert.Equal(t, slots[0].TopLeft(), g.render.placed[1])

	before := e.Snapshot()
	e.BoardResized(0, 800)
	e.BoardResized(-1, -1)
	assert.Equal(t, before, e.Snapshot())
}

func TestSyncReplaysCurrentView(t *testing.T) {
	g := newTestGame(t)
	g.toLookAway(t, models.SeatA)
	g.playRound(t, 5, 2)
	g.sched.Advance(WrongRevealDelay)

	fresh := newRecordingRenderer()
	g.engine.SyncTo(fresh)

	require.NotNil(t, fresh.overlay)
	assert.Equal(t, OverlayWrongGuess, fresh.overlay.Kind)
	assert.Len(t, fresh.placed, CaseCount-1)
	assert.Equal(t, []int{2}, fresh.removed)
	assert.Equal(t, []bool{false}, fresh.drag)
	assert.Equal(t, "Ready…", fresh.status)
	assert.Contains(t, fresh.calls, "counters:2/9")

	// 元の描画先には何も送られない
	assert.Equal(t, []int{2}, g.render.removed)
	assert.Same(t, g.render, g.engine.renderer)
}
