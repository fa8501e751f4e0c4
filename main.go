package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shellgame/screens" //盤面レイアウトや状態の問い合わせなどHTTPリクエストの処理
	"shellgame/shell"   //ゲームのセッションとWebSocket
	"shellgame/utils"   //設定・ロガーの初期化とCronジョブ(放置されたゲームのリセット)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func main() {
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		panic(err) // ロガーより先に読むため
	}

	logger, err := utils.InitLogger(config.Development) // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// このプロセスが持つ唯一のゲーム
	session := shell.NewSession(logger)
	go session.Run(ctx)

	// クーロンスケジューラのセットアップと呼び出し
	cronJobs, err := utils.CronIdleReset(session, config.IdleCheck, config.IdleReset.Duration, logger)
	if err != nil {
		logger.Fatal("Cronジョブの登録に失敗しました", zap.Error(err))
	}
	defer cronJobs.Stop()

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     allowOrigin(config.AllowedOrigins),
	}

	if !config.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	//リクエストロガーを起動
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//各HTTPリクエストのルーティング
	router.GET("/state", func(c *gin.Context) {
		screens.StateHandler(c, session, logger)
	})
	router.GET("/board", func(c *gin.Context) {
		screens.BoardHandler(c, logger)
	})
	router.GET("/names/random", func(c *gin.Context) {
		screens.RandomNamesHandler(c, session, logger)
	})
	router.GET("/ws", func(c *gin.Context) {
		shell.HandleConnections(c.Request.Context(), c.Writer, c.Request, session, upgrader, config, logger)
	})

	server := &http.Server{Addr: config.Addr, Handler: router}
	go func() {
		logger.Info("Listening", zap.String("addr", config.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run HTTP server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// allowOrigin は CORS と同じ許可リストで WebSocket のオリジンを確認する
func allowOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // ブラウザ以外
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
