package actions

import (
	"shellgame/internal/game"
	"shellgame/models"
	"shellgame/shell/broadcast"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Inputs はプレイヤーの操作をセッションのループに渡す先
type Inputs interface {
	Input(fn func(e *game.Engine))
}

// クライアントごとにメッセージ読み取りするゴルーチン。接続が切れたら戻る
func HandleClient(client *models.Client, inputs Inputs, logger *zap.Logger) {
	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", zap.String("clientID", client.ID), zap.Error(err))
			}
			return
		}

		msg, err := Decode(data)
		if err != nil {
			logger.Info("Rejected message", zap.String("clientID", client.ID), zap.Error(err))
			if err := client.Send(broadcast.Error(err)); err != nil {
				logger.Error("Failed to send error message", zap.Error(err))
			}
			continue
		}

		inputs.Input(func(e *game.Engine) {
			if err := Dispatch(e, msg); err != nil {
				logger.Error("Dispatch failed", zap.String("type", msg.Type), zap.Error(err))
			}
		})
	}
}
