package game

// DragSession は進行中のドラッグ1件分の一時状態
type DragSession struct {
	CaseID    int   `json:"caseId"`
	StartSlot int   `json:"startSlot"`
	Offset    Point `json:"offset"`   // ポインタとケース中心のずれ
	Position  Point `json:"position"` // ケース中心の現在位置（表示用）
	Pointer   Point `json:"pointer"`  // 最後に受け取ったポインタ位置
}

// Dragger は idle / active の2状態だけを持つ。同時にアクティブなドラッグは1件まで
type Dragger struct {
	board  *Assignment
	armed  bool
	active *DragSession
}

// NewDragger は board を対象にしたドラッグ管理を作る
func NewDragger(board *Assignment) *Dragger {
	return &Dragger{board: board}
}

// Armed はドラッグ入力が有効かどうか
func (d *Dragger) Armed() bool {
	return d.armed
}

// Active は進行中のドラッグ（なければnil）
func (d *Dragger) Active() *DragSession {
	return d.active
}

// Start begins a drag of caseID grabbed at pointer. It returns false when
// input is disarmed, another drag is running, or the case is not alive.
func (d *Dragger) Start(caseID int, pointer Point) bool {
	if !d.armed || d.active != nil {
		return false
	}
	if !d.board.IsAlive(caseID) {
		return false
	}

	startSlot, _ := d.board.SlotOf(caseID)
	slot, _ := d.board.Slot(startSlot)
	if _, ok := d.board.Lift(caseID); !ok {
		return false
	}

	d.active = &DragSession{
		CaseID:    caseID,
		StartSlot: startSlot,
		Offset:    pointer.Sub(slot.Center),
		Position:  slot.Center,
		Pointer:   pointer,
	}
	return true
}

// Move は表示位置だけを更新する。割り当ては変えない
func (d *Dragger) Move(pointer Point) (*DragSession, bool) {
	if d.active == nil {
		return nil, false
	}
	d.active.Pointer = pointer
	d.active.Position = pointer.Sub(d.active.Offset)
	return d.active, true
}

// Release resolves the drag at pointer: the nearest free slot wins, the
// start slot is the fallback. The session is destroyed either way.
func (d *Dragger) Release(pointer Point) (caseID, slotID int, ok bool) {
	if d.active == nil {
		return 0, 0, false
	}
	s := d.active
	d.active = nil

	target, found := d.board.NearestFreeSlot(pointer, s.CaseID)
	if !found {
		target = s.StartSlot
	}
	if err := d.board.Place(s.CaseID, target); err != nil {
		// 開始スロットに戻す
		if err := d.board.Place(s.CaseID, s.StartSlot); err != nil {
			return s.CaseID, 0, false
		}
		target = s.StartSlot
	}
	return s.CaseID, target, true
}

// Cancel はポインタを失った場合など。最後のポインタ位置で Release と同じ処理を行う
func (d *Dragger) Cancel() (caseID, slotID int, ok bool) {
	if d.active == nil {
		return 0, 0, false
	}
	return d.Release(d.active.Pointer)
}

// SetArmed はドラッグ入力の有効/無効を切り替える。無効化時は進行中のドラッグを確定させる
func (d *Dragger) SetArmed(armed bool) (caseID, slotID int, resolved bool) {
	d.armed = armed
	if !armed && d.active != nil {
		return d.Cancel()
	}
	return 0, 0, false
}

// Reset は新しい盤面に差し替える（フルリセット時）
func (d *Dragger) Reset(board *Assignment) {
	d.board = board
	d.active = nil
	d.armed = false
}
