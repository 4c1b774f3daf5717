package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWarnCarriesCategory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer Disable()

	Warn("bend", "clamped", zap.Int("tone", 3))
	Log("grid", "built %d ticks", 42)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel || entries[0].ContextMap()["category"] != "bend" {
		t.Fatalf("unexpected warn entry %+v", entries[0])
	}
	if entries[0].ContextMap()["tone"] != int64(3) {
		t.Fatalf("tone field = %v, want 3", entries[0].ContextMap()["tone"])
	}
	if entries[1].Message != "built 42 ticks" {
		t.Fatalf("message = %q", entries[1].Message)
	}
}

func TestLogEvery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer Disable()

	for i := 0; i < 10; i++ {
		LogEvery(5, "every-test", "tick")
	}
	if got := logs.Len(); got != 2 {
		t.Fatalf("got %d entries, want 2", got)
	}
}

func TestEnableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := EnableFile(path); err != nil {
		t.Fatalf("enable: %v", err)
	}
	Log("test", "hello %s", "file")
	Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Fatalf("log file missing message:\n%s", data)
	}
}
