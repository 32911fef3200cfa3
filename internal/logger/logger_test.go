package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aliskhannn/shadowfit-bot/internal/config"
)

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	cfg := &config.Config{
		Env: "production",
		Log: config.Log{Level: "info", Path: path, MaxSizeMB: 1},
	}

	log, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Debug("hidden")
	log.Info("quest completed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"msg":"quest completed"`) {
		t.Errorf("log file = %q, want the info entry", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("log file = %q, debug entry must be filtered", got)
	}
	if !strings.Contains(got, `"env":"production"`) {
		t.Errorf("log file = %q, want env field", got)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	cfg := &config.Config{Env: "local", Log: config.Log{Level: "loud"}}

	if _, err := New(cfg); err == nil {
		t.Error("New() error = nil, want error")
	}
}
