package game

import "shellgame/models"

// Snapshot はエンジンの状態を比較・配信するための値。当たりケースは含めるが JSON には出さない
type Snapshot struct {
	State     models.GameState `json:"state"`
	Positions map[int]int      `json:"positions"` // caseID -> slotID
	Lifted    int              `json:"lifted,omitempty"`
	Dragging  *DragSession     `json:"dragging,omitempty"`
	DragArmed bool             `json:"dragArmed"`
	Alive     int              `json:"alive"`
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
}

// Snapshot は現在の状態のコピーを返す
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:     e.state,
		Positions: e.board.Positions(),
		Lifted:    e.board.Lifted(),
		Dragging:  e.Dragging(),
		DragArmed: e.drag.Armed(),
		Alive:     e.board.Len(),
		Width:     e.width,
		Height:    e.height,
	}
}
