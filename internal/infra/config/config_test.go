package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PRACTICUM_TOKEN", "practicum")
	t.Setenv("TELEGRAM_TOKEN", "telegram")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PRACTICUM_ENDPOINT", "POLL_SCHEDULE", "HTTP_TIMEOUT", "PROCESS_ALL_HOMEWORKS",
		"DEDUP_MODE", "TELEGRAM_RATE_PER_SEC", "BOT_COMMANDS_ENABLED", "STATE_DRIVER",
		"STATE_DSN", "STATUS_ADDR", "LOG_LEVEL", "ENVIRONMENT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingAllTokens(t *testing.T) {
	clearOptional(t)
	t.Setenv("PRACTICUM_TOKEN", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	cfg, err := Load()
	if !errors.Is(err, ErrMissingTokens) {
		t.Fatalf("Load() error = %v, want ErrMissingTokens", err)
	}
	if cfg != nil {
		t.Fatalf("Load() cfg = %+v, want nil", cfg)
	}
	for _, name := range []string{"PRACTICUM_TOKEN", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestCheckTokens(t *testing.T) {
	tests := []struct {
		name    string
		args    [3]string
		wantErr bool
	}{
		{name: "all set", args: [3]string{"a", "b", "1"}},
		{name: "no practicum", args: [3]string{"", "b", "1"}, wantErr: true},
		{name: "no telegram", args: [3]string{"a", "", "1"}, wantErr: true},
		{name: "no chat", args: [3]string{"a", "b", ""}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokens(tt.args[0], tt.args[1], tt.args[2])
			if tt.wantErr != (err != nil) {
				t.Fatalf("CheckTokens() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMissingTokens) {
				t.Fatalf("error %v does not wrap ErrMissingTokens", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.TelegramChatID != 42 {
		t.Errorf("TelegramChatID = %d, want 42", cfg.TelegramChatID)
	}
	if cfg.PracticumEndpoint != DefaultPracticumEndpoint {
		t.Errorf("PracticumEndpoint = %q", cfg.PracticumEndpoint)
	}
	if cfg.PollSchedule != DefaultPollSchedule {
		t.Errorf("PollSchedule = %q", cfg.PollSchedule)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("HTTPTimeout = %v, want 0", cfg.HTTPTimeout)
	}
	if cfg.ProcessAllHomeworks {
		t.Error("ProcessAllHomeworks should default to false")
	}
	if cfg.DedupMode != DedupSingle {
		t.Errorf("DedupMode = %q", cfg.DedupMode)
	}
	if cfg.TelegramRatePerSec != 1 {
		t.Errorf("TelegramRatePerSec = %d", cfg.TelegramRatePerSec)
	}
	if cfg.StateDriver != "memory" {
		t.Errorf("StateDriver = %q", cfg.StateDriver)
	}
	if cfg.LogLevel != "debug" || cfg.Environment != "development" {
		t.Errorf("LogLevel/Environment = %q/%q", cfg.LogLevel, cfg.Environment)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("HTTP_TIMEOUT", "15s")
	t.Setenv("PROCESS_ALL_HOMEWORKS", "true")
	t.Setenv("DEDUP_MODE", "SPLIT")
	t.Setenv("STATE_DRIVER", "sqlite")
	t.Setenv("STATE_DSN", "/tmp/state.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !cfg.ProcessAllHomeworks {
		t.Error("ProcessAllHomeworks = false")
	}
	if cfg.DedupMode != DedupSplit {
		t.Errorf("DedupMode = %q", cfg.DedupMode)
	}
	if cfg.StateDriver != "sqlite" || cfg.StateDSN != "/tmp/state.db" {
		t.Errorf("state = %q %q", cfg.StateDriver, cfg.StateDSN)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "chat id", key: "TELEGRAM_CHAT_ID", val: "not-a-number"},
		{name: "timeout", key: "HTTP_TIMEOUT", val: "soon"},
		{name: "dedup", key: "DEDUP_MODE", val: "double"},
		{name: "rate", key: "TELEGRAM_RATE_PER_SEC", val: "0"},
		{name: "bool", key: "PROCESS_ALL_HOMEWORKS", val: "maybe"},
		{name: "driver without dsn", key: "STATE_DRIVER", val: "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptional(t)
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%q succeeded", tt.key, tt.val)
			} else if errors.Is(err, ErrMissingTokens) {
				t.Fatalf("Load() error %v should not be ErrMissingTokens", err)
			}
		})
	}
}
