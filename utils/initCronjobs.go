package utils

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleResetter は一定時間操作のないゲームを初期化できるもの（shell.Session）
type IdleResetter interface {
	ResetIfIdle(idle time.Duration)
}

// CronIdleReset は放置されたゲームを名前入力に戻すジョブを登録して開始する。
// idle が0以下ならジョブは登録しない
func CronIdleReset(target IdleResetter, schedule string, idle time.Duration, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	if idle <= 0 {
		logger.Info("Idle reset disabled")
		return c, nil
	}

	// ResetIfIdle はセッションのループに処理を渡すだけなのでブロックしない
	_, err := c.AddFunc(schedule, func() {
		logger.Debug("Checking for idle game", zap.Duration("idle", idle))
		target.ResetIfIdle(idle)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule idle reset %q: %w", schedule, err)
	}

	c.Start()
	return c, nil
}
