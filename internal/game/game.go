// Package game is the shell game core: board geometry, slot assignment,
// drag sessions, the phase engine and the round lifecycle.
//
// An Engine is not safe for concurrent use. All calls, including timer
// continuations from its Scheduler, must happen on one goroutine.
package game

import (
	"math/rand"
	"time"

	"shellgame/models"

	"go.uber.org/zap"
)

// Engine はゲーム状態の唯一の所有者。入力イベントはすべてここを通る
type Engine struct {
	logger   *zap.Logger
	renderer Renderer
	sched    Scheduler
	rng      *rand.Rand

	state models.GameState
	board *Assignment
	drag  *Dragger

	width  float64
	height float64

	epoch    int          // リセットごとに増える。古いタイマーの実行を防ぐ
	tasks    map[int]Task // まだ発火していないタイマー。発火か取り消しで消える
	nextTask int
	coin     coinFlip

	overlay  *Overlay    // 現在表示中のダイアログ（再接続時の再描画用）
	rendered map[int]bool // 描画側に存在するケース
}

type coinFlip struct {
	resolved bool
	flip     int // タイマーのID。0 は未予約
}

// Option は Engine の依存を差し替える
type Option func(*Engine)

// WithRenderer は描画先を設定する
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithScheduler はタイマーの実装を設定する
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithRand はコイントス用の乱数生成器を設定する
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// NewEngine creates a game in the NAMES phase with cases 1..10 on outer
// slots 1..10. Nothing is rendered until Start or Sync is called.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger:   logger,
		renderer: NopRenderer{},
		width:    DefaultBoardSize,
		height:   DefaultBoardSize,
		rendered: make(map[int]bool),
		tasks:    make(map[int]Task),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.sched == nil {
		// 時間を進めない限りタイマーは発火しない
		e.sched = NewManualScheduler()
	}
	if e.rng == nil {
		e.rng = NewRandGenerator()
	}

	e.state = models.NewGameState()
	e.board = NewAssignment()
	e.drag = NewDragger(e.board)
	return e
}

// Start は初期画面（名前入力）を描画する
func (e *Engine) Start() {
	e.placeAllCases()
	e.setPhase(models.PhaseNames)
	e.showOverlay(Overlay{Kind: OverlayNames})
}

// State は現在のゲーム状態のコピー
func (e *Engine) State() models.GameState {
	return e.state
}

// Board は盤面の割り当て（読み取り専用として扱うこと）
func (e *Engine) Board() *Assignment {
	return e.board
}

// Dragging は進行中のドラッグのコピー（なければnil）
func (e *Engine) Dragging() *DragSession {
	if s := e.drag.Active(); s != nil {
		cp := *s
		return &cp
	}
	return nil
}

// DragArmed はドラッグ入力が有効かどうか
func (e *Engine) DragArmed() bool {
	return e.drag.Armed()
}

// BoardSize は現在の盤面サイズ
func (e *Engine) BoardSize() (float64, float64) {
	return e.width, e.height
}

// Overlay は表示中のダイアログ（なければnil）
func (e *Engine) Overlay() *Overlay {
	if e.overlay == nil {
		return nil
	}
	cp := *e.overlay
	return &cp
}

// Sync は描画側にすべての状態を送り直す
func (e *Engine) Sync() {
	e.SyncTo(e.renderer)
}

// SyncTo replays the current view into r, typically a newly connected
// client. Engine state, including the set of rendered cases, is unchanged.
func (e *Engine) SyncTo(r Renderer) {
	prev := e.renderer
	e.renderer = r
	defer func() { e.renderer = prev }()

	r.SetDragEnabled(e.drag.Armed())
	e.render()

	active := e.drag.Active()
	for caseID := 1; caseID <= CaseCount; caseID++ {
		switch {
		case active != nil && active.CaseID == caseID:
			r.PlaceCase(caseID, topLeft(active.Position), true)
		case e.board.IsAlive(caseID):
			slotID, _ := e.board.SlotOf(caseID)
			slot, _ := e.board.Slot(slotID)
			r.PlaceCase(caseID, slot.TopLeft(), false)
		default:
			r.RemoveCase(caseID)
		}
	}
	r.RenderSelection(e.selection())
	if e.overlay != nil {
		r.ShowOverlay(*e.overlay)
	} else {
		r.HideOverlay()
	}
}

// BoardResized はどのフェーズでも有効。スロット座標を再計算してケースを置き直す
func (e *Engine) BoardResized(width, height float64) {
	if !(width > 0) || !(height > 0) {
		e.logger.Debug("Invalid board size ignored", zap.Float64("width", width), zap.Float64("height", height))
		return
	}
	e.width = width
	e.height = height
	e.board.Resize(width, height)
	e.placeAllCases()
}

// SweepVisuals removes rendered cases that are no longer alive. It never
// touches the slot assignment and is safe to call at any rate.
func (e *Engine) SweepVisuals() {
	for caseID := range e.rendered {
		if e.board.IsAlive(caseID) {
			continue
		}
		e.renderer.RemoveCase(caseID)
		delete(e.rendered, caseID)
		e.logger.Debug("Orphaned case visual removed", zap.Int("caseID", caseID))
	}
}

// after はタイマーを予約してIDを返す。リセット後に発火した古いタイマーは無視される
func (e *Engine) after(d time.Duration, fn func()) int {
	e.nextTask++
	id := e.nextTask
	epoch := e.epoch
	e.tasks[id] = e.sched.Schedule(d, func() {
		delete(e.tasks, id)
		if epoch != e.epoch {
			return
		}
		fn()
	})
	return id
}

// cancel は予約済みのタイマーを1つ取り消す。発火済みなら何もしない
func (e *Engine) cancel(id int) {
	if t, ok := e.tasks[id]; ok {
		t.Cancel()
		delete(e.tasks, id)
	}
}

func (e *Engine) cancelTimers() {
	for id, t := range e.tasks {
		t.Cancel()
		delete(e.tasks, id)
	}
	e.epoch++
}

func (e *Engine) ignored(action string) {
	e.logger.Debug("Action ignored in current phase",
		zap.String("action", action),
		zap.String("phase", e.state.Phase.String()),
	)
}

func topLeft(center Point) Point {
	return Point{X: center.X - CaseSize/2, Y: center.Y - CaseSize/2}
}

func (e *Engine) placeCase(caseID int) {
	slotID, ok := e.board.SlotOf(caseID)
	if !ok {
		return
	}
	slot, _ := e.board.Slot(slotID)
	e.renderer.PlaceCase(caseID, slot.TopLeft(), false)
	e.rendered[caseID] = true
}

// ドラッグ中のケースはポインタに追従させるため除外
func (e *Engine) placeAllCases() {
	dragged := 0
	if s := e.drag.Active(); s != nil {
		dragged = s.CaseID
	}
	for _, caseID := range e.board.Alive() {
		if caseID == dragged {
			continue
		}
		e.placeCase(caseID)
	}
}

func (e *Engine) showOverlay(o Overlay) {
	e.overlay = &o
	e.renderer.ShowOverlay(o)
}

func (e *Engine) hideOverlay() {
	e.overlay = nil
	e.renderer.HideOverlay()
}

func (e *Engine) selection() int {
	switch e.state.Phase {
	case models.PhasePickWinner:
		return e.state.SelectedWinningCaseID
	case models.PhaseGuess:
		return e.state.SelectedGuessCaseID
	}
	return 0
}

func (e *Engine) clearSelections() {
	e.state.ClearSelections()
	e.renderer.RenderSelection(0)
}

// render はフェーズ表示・カウンタ・案内文・ロックボタンを更新する
func (e *Engine) render() {
	e.renderer.RenderPhase(e.state.Phase.Label())
	e.renderer.RenderCounters(e.state.Round, e.board.Len())
	e.renderer.RenderStatus(StatusText(e.state))
	label, enabled := LockButton(e.state)
	e.renderer.RenderLockButton(label, enabled)
}
