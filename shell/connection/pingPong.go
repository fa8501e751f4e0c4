package connection

import (
	"context"
	"time"

	"shellgame/models"

	"go.uber.org/zap"
)

// MaintainWebSocketConnection はクライアントのWebSocket接続を維持し、Ping/Pongメッセージで接続をチェックします。
// readDeadline 以内に Pong（または任意のメッセージ）が来なければ読み取り側がエラーで終了する。
// ctx が終わるか Ping の送信に失敗したら戻る
func MaintainWebSocketConnection(ctx context.Context, c *models.Client, pingPeriod, readDeadline time.Duration, logger *zap.Logger) {
	// 読み取りデッドラインの初期設定（最初のPong待機に使用）
	if err := c.Conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		logger.Warn("Failed to set read deadline", zap.String("clientID", c.ID), zap.Error(err))
	}
	// Pongハンドラの設定
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Ping(); err != nil {
				logger.Info("Ping failed, closing connection", zap.String("clientID", c.ID), zap.Error(err))
				c.Close()
				return
			}
		}
	}
}
