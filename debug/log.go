package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	file    *os.File
	mu      sync.Mutex
	logger  = zap.NewNop()
	enabled bool
)

// Enable starts debug logging to ~/.config/go-midiplug/debug.log
func Enable() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return EnableFile(filepath.Join(homeDir, ".config", "go-midiplug", "debug.log"))
}

// EnableFile starts debug logging to the given file, truncating it
func EnableFile(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), zapcore.DebugLevel)
	file = f
	logger = zap.New(core)
	enabled = true

	logger.Debug("=== Debug logging started ===", zap.String("category", "debug"))
	return nil
}

// SetLogger routes all debug output to l. Passing nil silences logging.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	enabled = true
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	if file != nil {
		file.Close()
		file = nil
	}
	logger = zap.NewNop()
	enabled = false
}

// Logger returns the current logger
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	Logger().Debug(fmt.Sprintf(format, args...), zap.String("category", category))
}

// Warn reports a non-fatal problem; used for degraded output such as
// clamped pitch bends
func Warn(category, msg string, fields ...zap.Field) {
	Logger().Warn(msg, append(fields, zap.String("category", category))...)
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
