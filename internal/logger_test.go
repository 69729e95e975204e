package internal

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_ProdEmitsJSONWithServiceAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "prod", "info")
	logger.Info("order created", slog.String("order_number", "BDG-2026-000001"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("prod log line is not JSON: %v\n%s", err, buf.String())
	}
	if entry["service"] != "bodega" {
		t.Errorf("service = %v, want bodega", entry["service"])
	}
	if entry["order_number"] != "BDG-2026-000001" {
		t.Errorf("order_number = %v, want BDG-2026-000001", entry["order_number"])
	}
}

func TestNewLogger_DevEmitsText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "dev", "info")
	logger.Info("listening")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("dev log should be text, got: %s", buf.String())
	}
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		showDebug bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"nonsense", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "dev", tt.level)
			logger.Debug("sweep finished")

			if got := buf.Len() > 0; got != tt.showDebug {
				t.Errorf("debug record emitted = %v, want %v", got, tt.showDebug)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
