package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config параметры запуска процесса. Рабочие настройки (зоны, OCR, InfluxDB)
// живут в JSON-файле по пути ConfigPath.
type Config struct {
	ConfigPath     string
	HTTPAddr       string
	TelegramToken  string
	TelegramChatID int64
}

// Load читает параметры из окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		ConfigPath:    getEnv("CONFIG_PATH", "config/settings.json"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
