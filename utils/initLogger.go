package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ロガーを初期化
func InitLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// RequestLogger は gin のアクセスログ。
// /ws はアップグレード後、接続が切れるまでハンドラが戻らないので接続の開始と終了を別に記録する
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		upgrade := c.IsWebsocket()
		if upgrade {
			logger.Info("WebSocket upgrade requested", zap.String("remote", c.ClientIP()))
		}

		c.Next()

		route := c.FullPath()
		if route == "" {
			// 未登録のパス
			route = c.Request.URL.Path
		}
		if upgrade {
			logger.Info("WebSocket connection closed",
				zap.String("route", route),
				zap.String("remote", c.ClientIP()),
				zap.Duration("connected", time.Since(start)),
			)
			return
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case status >= 500:
			logger.Error("Request failed", fields...)
		case status >= 400:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Info("Request", fields...)
		}
	}
}
