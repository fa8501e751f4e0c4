package shell

import (
	"context"
	"net/http"

	"shellgame/models"
	"shellgame/shell/actions"
	"shellgame/shell/connection"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket接続へのアップグレードを行う関数。接続が切れるまで戻らない
func HandleConnections(ctx context.Context, w http.ResponseWriter, r *http.Request, session *Session, upgrader websocket.Upgrader, config models.Config, logger *zap.Logger) {
	// WebSocket接続へのアップグレードと確立
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade がエラー応答を書き込み済み
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := models.NewClient(uuid.New().String(), conn, config.WriteWait.Duration)
	logger = logger.With(zap.String("clientID", client.ID))

	// ゲームの状態を送ってから配信先に加える
	session.Attach(client)

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		// 先に閉じる。ループが書き込み中でも Close で解放されてから Detach が届く
		client.Close()
		session.Detach(client)
		logger.Info("Client removed")
	}()

	// Ping/Pongを管理するゴルーチンを起動
	go connection.MaintainWebSocketConnection(ctx, client, config.PingPeriod.Duration, config.ReadDeadline.Duration, logger)

	// 読み取りはこのゴルーチンで行う
	actions.HandleClient(client, session, logger)
}
