package shell

import (
	"context"
	"errors"
	"time"

	"shellgame/internal/game"
	"shellgame/models"
	"shellgame/shell/broadcast"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventBuffer はループに溜められる処理の数
const eventBuffer = 256

// ErrSessionClosed はループが終了した後の Do の戻り値
var ErrSessionClosed = errors.New("session closed")

// Session owns the single game of this process. Every engine call, whether
// from a socket reader, a timer or an HTTP handler, is posted into the loop
// started by Run so that the engine never runs concurrently.
type Session struct {
	ID     string
	logger *zap.Logger
	engine *game.Engine
	hub    *broadcast.Hub

	events chan func()
	done   chan struct{}

	// 以下はループ上でのみ触る
	lastInput time.Time
	now       func() time.Time
}

// NewSession はセッションを作る。opts はエンジンの既定の描画先とタイマーの後に適用される
func NewSession(logger *zap.Logger, opts ...game.Option) *Session {
	id := uuid.New().String()
	s := &Session{
		ID:     id,
		logger: logger.With(zap.String("sessionID", id)),
		hub:    broadcast.NewHub(logger),
		events: make(chan func(), eventBuffer),
		done:   make(chan struct{}),
		now:    time.Now,
	}
	base := []game.Option{
		game.WithRenderer(s.hub.Renderer()),
		game.WithScheduler(game.NewLoopScheduler(s.post)),
	}
	s.engine = game.NewEngine(s.logger, append(base, opts...)...)
	return s
}

// Run はイベントループ。ctx が終わるまで戻らない。一度だけ呼ぶこと
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)

	s.lastInput = s.now()
	s.engine.Start()
	s.logger.Info("Session started")

	// 消えたケースの表示を定期的に掃除する
	sweep := time.NewTicker(game.VisualSweepPeriod)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Session stopped")
			return
		case fn := <-s.events:
			fn()
		case <-sweep.C:
			s.engine.SweepVisuals()
		}
	}
}

func (s *Session) post(fn func()) {
	select {
	case s.events <- fn:
	case <-s.done:
	}
}

// Post は fn をループ上で実行する
func (s *Session) Post(fn func(e *game.Engine)) {
	s.post(func() { fn(s.engine) })
}

// Input はプレイヤーの操作。無操作時間の計測をやり直す
func (s *Session) Input(fn func(e *game.Engine)) {
	s.post(func() {
		s.lastInput = s.now()
		fn(s.engine)
	})
}

// Do は fn をループ上で実行し、終わるまで待つ
func (s *Session) Do(ctx context.Context, fn func(e *game.Engine)) error {
	finished := make(chan struct{})
	task := func() {
		fn(s.engine)
		close(finished)
	}
	// キューが詰まっていても ctx で抜けられるように送信側も待つ
	select {
	case s.events <- task:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSessionClosed
	}
}

// Attach は新しいクライアントを配信先に加え、現在の画面を送る
func (s *Session) Attach(c *models.Client) {
	s.Post(func(e *game.Engine) {
		s.hub.Add(c)
		s.hub.SendTo(c, broadcast.Session(s.ID, c.ID))
		e.SyncTo(s.hub.RendererFor(c))
		s.logger.Info("Client attached", zap.String("clientID", c.ID), zap.Int("clients", s.hub.Len()))
	})
}

// Detach はクライアントを配信先から外す。Attach と同じ順序で処理される
func (s *Session) Detach(c *models.Client) {
	s.Post(func(*game.Engine) {
		s.hub.Remove(c)
		s.logger.Info("Client detached", zap.String("clientID", c.ID), zap.Int("clients", s.hub.Len()))
	})
}

// Clients は接続中のクライアント数
func (s *Session) Clients() int {
	return s.hub.Len()
}

// ResetIfIdle は idle 以上操作がなければ名前入力からやり直す。NAMES では何もしない
func (s *Session) ResetIfIdle(idle time.Duration) {
	s.Post(func(e *game.Engine) {
		if e.State().Phase == models.PhaseNames {
			return
		}
		quiet := s.now().Sub(s.lastInput)
		if quiet < idle {
			return
		}
		s.logger.Info("Resetting idle game", zap.Duration("idle", quiet), zap.String("phase", e.State().Phase.String()))
		e.ResetPressed()
		s.lastInput = s.now()
	})
}
