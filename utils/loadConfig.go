package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"shellgame/models"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix は設定を上書きする環境変数の接頭辞
const EnvPrefix = "SHELLGAME_"

// LoadConfig は config.json を読み、環境変数で上書きする。ファイルがなければ既定値を使う
func LoadConfig(filename string) (models.Config, error) {
	config := models.DefaultConfig()

	configFile, err := os.Open(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// 設定ファイルは任意
	case err != nil:
		return config, fmt.Errorf("open config %s: %w", filename, err)
	default:
		defer configFile.Close()
		if err := json.NewDecoder(configFile).Decode(&config); err != nil {
			return config, fmt.Errorf("decode config %s: %w", filename, err)
		}
	}

	if err := env.ParseWithOptions(&config, env.Options{Prefix: EnvPrefix}); err != nil {
		return config, fmt.Errorf("parse env: %w", err)
	}
	if len(config.AllowedOrigins) == 0 {
		return config, errors.New("allowed_origins must not be empty")
	}
	if config.PingPeriod.Duration <= 0 || config.ReadDeadline.Duration <= config.PingPeriod.Duration {
		return config, fmt.Errorf("read deadline %s must exceed ping period %s", config.ReadDeadline, config.PingPeriod)
	}
	return config, nil
}
