package screens

import (
	"net/http"

	"shellgame/internal/game"
	"shellgame/shell"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 現在のゲーム状態を返すハンドラー（当たりのケースは含まない）
func StateHandler(c *gin.Context, session *shell.Session, logger *zap.Logger) {
	var snapshot game.Snapshot
	err := session.Do(c.Request.Context(), func(e *game.Engine) {
		snapshot = e.Snapshot()
	})
	if err != nil {
		logger.Error("Failed to read game state", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Game session unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"sessionId": session.ID,
		"game":      snapshot,
	})
}

// BoardRequest は盤面レイアウトの問い合わせ。省略時は既定のサイズ
type BoardRequest struct {
	Width  float64 `form:"width" binding:"omitempty,gt=0"`
	Height float64 `form:"height" binding:"omitempty,gt=0"`
}

// 盤面サイズに対するスロット座標を返すハンドラー
func BoardHandler(c *gin.Context, logger *zap.Logger) {
	var req BoardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Info("Invalid board query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "width and height must be positive numbers"})
		return
	}
	if req.Width == 0 {
		req.Width = game.DefaultBoardSize
	}
	if req.Height == 0 {
		req.Height = game.DefaultBoardSize
	}

	outer, inner := game.RingRadii(req.Width, req.Height)
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"width":       req.Width,
		"height":      req.Height,
		"caseSize":    game.CaseSize,
		"outerRadius": outer,
		"innerRadius": inner,
		"slots":       game.ComputeSlots(req.Width, req.Height),
	})
}

// 名前入力欄の「ランダム」ボタン用
func RandomNamesHandler(c *gin.Context, session *shell.Session, logger *zap.Logger) {
	var nameA, nameB string
	err := session.Do(c.Request.Context(), func(e *game.Engine) {
		nameA, nameB = e.RandomNames()
	})
	if err != nil {
		logger.Error("Failed to pick random names", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Game session unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "nameA": nameA, "nameB": nameB})
}
