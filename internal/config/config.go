package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	HTTPAddr      string
	Environment   string
	// MoveAcrossDays управляет переносом занятия между днями при
	// редактировании: удалять ли запись со старого дня. Выключено по
	// умолчанию — старая запись остаётся на прежнем дне.
	MoveAcrossDays bool
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		Environment:   os.Getenv("ENV"),
	}

	if v := os.Getenv("MOVE_ACROSS_DAYS"); v != "" {
		moveAcrossDays, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MOVE_ACROSS_DAYS must be a boolean, got %q", v)
		}
		cfg.MoveAcrossDays = moveAcrossDays
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	// Обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	return cfg, nil
}
