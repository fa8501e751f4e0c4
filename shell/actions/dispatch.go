package actions

import (
	"encoding/json"
	"errors"
	"fmt"

	"shellgame/internal/game"
)

// 受信メッセージの種類
const (
	TypeNamesConfirmed    = "namesConfirmed"
	TypeCoinFlipResolved  = "coinFlipResolved"
	TypeCoinFlipSkipped   = "coinFlipSkipped"
	TypeReadyAcknowledged = "readyAcknowledged"
	TypeContinue          = "continue"
	TypeDoneMoving        = "doneMoving"
	TypeCaseSelected      = "caseSelected"
	TypeLockIn            = "lockIn"
	TypeBoardResized      = "boardResized"
	TypeDragStarted       = "dragStarted"
	TypeDragMoved         = "dragMoved"
	TypeDragReleased      = "dragReleased"
	TypeDragCancelled     = "dragCancelled"
	TypePlayAgain         = "playAgain"
	TypeReset             = "reset"
)

var (
	ErrMalformed   = errors.New("malformed message")
	ErrUnknownType = errors.New("unknown message type")
)

// Message はクライアントからの操作。使うフィールドは Type によって異なる
type Message struct {
	Type   string  `json:"type"`
	NameA  string  `json:"nameA,omitempty"`
	NameB  string  `json:"nameB,omitempty"`
	CaseID int     `json:"caseId,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Decode parses one inbound frame. Phase gating is left to the engine, so a
// well-formed message of a known type is always accepted here.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, ok := handlers[msg.Type]; !ok {
		return msg, fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
	return msg, nil
}

var handlers = map[string]func(e *game.Engine, msg Message){
	TypeNamesConfirmed:    func(e *game.Engine, m Message) { e.NamesConfirmed(m.NameA, m.NameB) },
	TypeCoinFlipResolved:  func(e *game.Engine, _ Message) { e.CoinFlipResolved() },
	TypeCoinFlipSkipped:   func(e *game.Engine, _ Message) { e.CoinFlipSkipped() },
	TypeReadyAcknowledged: func(e *game.Engine, _ Message) { e.ReadyAcknowledged() },
	TypeContinue:          func(e *game.Engine, _ Message) { e.ContinuePressed() },
	TypeDoneMoving:        func(e *game.Engine, _ Message) { e.DoneMoving() },
	TypeCaseSelected:      func(e *game.Engine, m Message) { e.CaseSelected(m.CaseID) },
	TypeLockIn:            func(e *game.Engine, _ Message) { e.LockInPressed() },
	TypeBoardResized:      func(e *game.Engine, m Message) { e.BoardResized(m.Width, m.Height) },
	TypeDragStarted:       func(e *game.Engine, m Message) { e.DragStarted(m.CaseID, m.point()) },
	TypeDragMoved:         func(e *game.Engine, m Message) { e.DragMoved(m.point()) },
	TypeDragReleased:      func(e *game.Engine, m Message) { e.DragReleased(m.point()) },
	TypeDragCancelled:     func(e *game.Engine, _ Message) { e.DragCancelled() },
	TypePlayAgain:         func(e *game.Engine, _ Message) { e.PlayAgainPressed() },
	TypeReset:             func(e *game.Engine, _ Message) { e.ResetPressed() },
}

func (m Message) point() game.Point {
	return game.Point{X: m.X, Y: m.Y}
}

// Dispatch はエンジンの対応する操作を呼ぶ。セッションのループ上で呼ぶこと
func Dispatch(e *game.Engine, msg Message) error {
	h, ok := handlers[msg.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownType, msg.Type)
	}
	h(e, msg)
	return nil
}
