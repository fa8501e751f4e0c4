package models

import "time"

// Config はサーバーの設定。config.json の値を環境変数（SHELLGAME_*）で上書きできる
type Config struct {
	Addr           string   `json:"addr" env:"ADDR"`
	AllowedOrigins []string `json:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	Development    bool     `json:"development" env:"DEVELOPMENT"`
	PingPeriod     Duration `json:"ping_period" env:"PING_PERIOD"`
	ReadDeadline   Duration `json:"read_deadline" env:"READ_DEADLINE"`
	WriteWait      Duration `json:"write_wait" env:"WRITE_WAIT"` // 1フレームの書き込み期限
	IdleReset      Duration `json:"idle_reset" env:"IDLE_RESET"` // 0 で無効
	IdleCheck      string   `json:"idle_check" env:"IDLE_CHECK"` // cron の書式
}

// DefaultConfig は設定ファイルがない場合の値
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		AllowedOrigins: []string{"http://localhost:8080"},
		PingPeriod:     Duration{10 * time.Second},
		ReadDeadline:   Duration{60 * time.Second},
		WriteWait:      Duration{DefaultWriteWait},
		IdleReset:      Duration{30 * time.Minute},
		IdleCheck:      "@every 1m",
	}
}

// Duration は "10s" のような文字列で書ける time.Duration
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
