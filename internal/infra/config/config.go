package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingTokens is returned when any required credential is absent.
// It is the only fatal configuration error.
var ErrMissingTokens = errors.New("required environment variables are not set")

const (
	DefaultPracticumEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule      = "@every 10m"
)

// Dedup modes.
const (
	DedupSingle = "single"
	DedupSplit  = "split"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64

	PracticumEndpoint   string
	PollSchedule        string        // robfig/cron spec, e.g. "@every 10m"
	HTTPTimeout         time.Duration // 0 means no client timeout
	ProcessAllHomeworks bool
	DedupMode           string
	TelegramRatePerSec  int
	BotCommandsEnabled  bool

	StateDriver string // memory, postgres, sqlite, redis
	StateDSN    string
	StatusAddr  string // empty disables the status HTTP endpoint

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}
	chatIDStr := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))

	if err := CheckTokens(cfg.PracticumToken, cfg.TelegramToken, chatIDStr); err != nil {
		return nil, err
	}

	var err error
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.PracticumEndpoint = getEnv("PRACTICUM_ENDPOINT", DefaultPracticumEndpoint)
	cfg.PollSchedule = getEnv("POLL_SCHEDULE", DefaultPollSchedule)

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
	}

	cfg.ProcessAllHomeworks, err = getEnvBool("PROCESS_ALL_HOMEWORKS", false)
	if err != nil {
		return nil, err
	}
	cfg.BotCommandsEnabled, err = getEnvBool("BOT_COMMANDS_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg.DedupMode = strings.ToLower(getEnv("DEDUP_MODE", DedupSingle))
	if cfg.DedupMode != DedupSingle && cfg.DedupMode != DedupSplit {
		return nil, fmt.Errorf("invalid DEDUP_MODE %q: want %q or %q", cfg.DedupMode, DedupSingle, DedupSplit)
	}

	cfg.TelegramRatePerSec = 1
	if raw := os.Getenv("TELEGRAM_RATE_PER_SEC"); raw != "" {
		cfg.TelegramRatePerSec, err = strconv.Atoi(raw)
		if err != nil || cfg.TelegramRatePerSec <= 0 {
			return nil, fmt.Errorf("invalid TELEGRAM_RATE_PER_SEC %q", raw)
		}
	}

	cfg.StateDriver = strings.ToLower(getEnv("STATE_DRIVER", "memory"))
	cfg.StateDSN = os.Getenv("STATE_DSN")
	if cfg.StateDriver != "memory" && cfg.StateDSN == "" {
		return nil, fmt.Errorf("STATE_DSN is not set for STATE_DRIVER %q", cfg.StateDriver)
	}
	cfg.StatusAddr = os.Getenv("STATUS_ADDR")

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "debug"))
	cfg.Environment = strings.ToLower(getEnv("ENVIRONMENT", "development"))

	return cfg, nil
}

// CheckTokens reports every required credential that is empty.
func CheckTokens(practicumToken, telegramToken, telegramChatID string) error {
	var missing []string
	if practicumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if telegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if telegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTokens, strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
