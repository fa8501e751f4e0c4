package broadcast

import (
	"sync"

	"shellgame/internal/game"

	"go.uber.org/zap"
)

// Message はクライアントへ送るJSONフレーム。"type" で種類を表す
type Message map[string]interface{}

// Sender はメッセージを1つ送れる接続（models.Client）
type Sender interface {
	Send(v interface{}) error
	Close() error
}

// Hub は接続中のクライアントの一覧。描画要求を全員に配信する
type Hub struct {
	mu      sync.Mutex
	clients map[Sender]bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{clients: make(map[Sender]bool), logger: logger}
}

// Add はクライアントを配信先に加える
func (h *Hub) Add(c Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Remove はクライアントを配信先から外す
func (h *Hub) Remove(c Sender) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
}

// Len は接続中のクライアント数
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast は全クライアントに送る
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	targets := make([]Sender, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		h.SendTo(c, msg)
	}
}

// SendTo は1つのクライアントにだけ送る。
// 送れなかったクライアントは配信先から外して閉じる。後始末は読み取り側が行う
func (h *Hub) SendTo(c Sender, msg Message) {
	if err := c.Send(msg); err != nil {
		h.logger.Warn("Failed to send message, dropping client", zap.Any("type", msg["type"]), zap.Error(err))
		h.Remove(c)
		c.Close()
	}
}

// Renderer は全員に配信する game.Renderer
func (h *Hub) Renderer() *Renderer {
	return &Renderer{emit: h.Broadcast}
}

// RendererFor は1つのクライアントだけに描画する game.Renderer（接続直後の同期用）
func (h *Hub) RendererFor(c Sender) *Renderer {
	return &Renderer{emit: func(msg Message) { h.SendTo(c, msg) }}
}

// Renderer turns the engine's render calls into websocket frames.
type Renderer struct {
	emit func(Message)
}

var _ game.Renderer = (*Renderer)(nil)

func (r *Renderer) RenderPhase(label string) {
	r.emit(Message{"type": "phase", "label": label})
}

func (r *Renderer) RenderCounters(round, alive int) {
	r.emit(Message{"type": "counters", "round": round, "alive": alive})
}

func (r *Renderer) RenderStatus(text string) {
	r.emit(Message{"type": "status", "text": text})
}

func (r *Renderer) RenderLockButton(label string, enabled bool) {
	r.emit(Message{"type": "lockButton", "label": label, "enabled": enabled})
}

func (r *Renderer) RenderSelection(caseID int) {
	r.emit(Message{"type": "selection", "caseId": caseID})
}

func (r *Renderer) ShowOverlay(o game.Overlay) {
	r.emit(Message{"type": "overlay", "overlay": o})
}

func (r *Renderer) HideOverlay() {
	r.emit(Message{"type": "hideOverlay"})
}

func (r *Renderer) Cue(c game.Cue) {
	r.emit(Message{"type": "cue", "cue": c})
}

// PlaceCase の座標はケースの左上
func (r *Renderer) PlaceCase(caseID int, pos game.Point, dragging bool) {
	r.emit(Message{"type": "casePosition", "caseId": caseID, "x": pos.X, "y": pos.Y, "dragging": dragging})
}

func (r *Renderer) RemoveCase(caseID int) {
	r.emit(Message{"type": "caseRemoved", "caseId": caseID})
}

func (r *Renderer) SetDragEnabled(enabled bool) {
	r.emit(Message{"type": "dragEnabled", "enabled": enabled})
}

// Session は接続直後に送るセッション情報
func Session(sessionID, clientID string) Message {
	return Message{"type": "session", "sessionId": sessionID, "clientId": clientID}
}

// Error はクライアントへのエラー通知
func Error(err error) Message {
	return Message{"type": "error", "error": err.Error()}
}
