package game

import "shellgame/models"

// OverlayKind は表示するダイアログの種類
type OverlayKind string

const (
	OverlayNames      OverlayKind = "names"
	OverlayCoin       OverlayKind = "coin"
	OverlayCoinResult OverlayKind = "coinResult"
	OverlayLookAway   OverlayKind = "lookAway"
	OverlayPassDevice OverlayKind = "passDevice"
	OverlayWrongGuess OverlayKind = "wrongGuess"
	OverlayWin        OverlayKind = "win"
)

// Overlay はダイアログの表示要求。名前は描画側でそのまま使える形で渡す
type Overlay struct {
	Kind OverlayKind `json:"kind"`

	// Seat は操作を渡す相手の席（lookAway では次に操作する側、passDevice では当てる側）
	Seat models.Seat `json:"seat,omitempty"`
	Name string      `json:"name,omitempty"`

	// Other は画面を見てはいけない側など、もう一方のプレイヤー
	Other     models.Seat `json:"other,omitempty"`
	OtherName string      `json:"otherName,omitempty"`

	CaseID int             `json:"caseId,omitempty"`
	Names  *models.Players `json:"names,omitempty"` // コイントスの画面だけ
}

// Cue は一時的な演出
type Cue string

const (
	CueWrong      Cue = "wrong"
	CueWrongClear Cue = "wrongClear"
	CueWin        Cue = "win"
	CueWinClear   Cue = "winClear"
	CueClearAll   Cue = "clearAll"
)

// Renderer is the presentation side of the game. The Engine calls it after
// every state change; implementations must not call back into the Engine.
type Renderer interface {
	RenderPhase(label string)
	RenderCounters(round, alive int)
	RenderStatus(text string)
	RenderLockButton(label string, enabled bool)
	RenderSelection(caseID int) // 0 は選択なし
	ShowOverlay(o Overlay)
	HideOverlay()
	Cue(c Cue)
	PlaceCase(caseID int, pos Point, dragging bool)
	RemoveCase(caseID int)
	SetDragEnabled(enabled bool)
}

// NopRenderer は何も描画しない
type NopRenderer struct{}

func (NopRenderer) RenderPhase(string)            {}
func (NopRenderer) RenderCounters(int, int)       {}
func (NopRenderer) RenderStatus(string)           {}
func (NopRenderer) RenderLockButton(string, bool) {}
func (NopRenderer) RenderSelection(int)           {}
func (NopRenderer) ShowOverlay(Overlay)           {}
func (NopRenderer) HideOverlay()                  {}
func (NopRenderer) Cue(Cue)                       {}
func (NopRenderer) PlaceCase(int, Point, bool)    {}
func (NopRenderer) RemoveCase(int)                {}
func (NopRenderer) SetDragEnabled(bool)           {}
