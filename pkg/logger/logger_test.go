package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitWithFileConfigWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "stlsplit.log")

	err := InitWithFileConfig("debug", DefaultFileConfig(logPath), false)
	if err != nil {
		t.Fatalf("InitWithFileConfig: %v", err)
	}

	Log.Info("fragment written", zap.Int("part", 1))
	Sugar.Debugw("grid planned", "xsplit", 2, "ysplit", 3)
	Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "fragment written") {
		t.Errorf("log file missing info entry, got %q", out)
	}
	if !strings.Contains(out, "grid planned") {
		t.Errorf("log file missing debug entry, got %q", out)
	}
}

func TestInitWithFileConfigRespectsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "stlsplit.log")

	if err := InitWithFileConfig("warn", DefaultFileConfig(logPath), false); err != nil {
		t.Fatalf("InitWithFileConfig: %v", err)
	}

	Log.Info("should be dropped")
	Log.Warn("should be kept")
	Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info entry logged at warn level: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
