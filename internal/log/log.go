package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger      *zap.Logger
	enabled     bool
	initialized bool
	mu          sync.Mutex
	callCount   int // Track backend calls

	devDir     string // DEV_DIR directory path for debug output
	devEnabled bool   // Whether DEV_DIR is enabled
)

// Init initializes the logger based on LUMINA_DEBUG env var
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}
	initialized = true

	// DEV_DIR JSON dumps are independent of LUMINA_DEBUG
	if dir := os.Getenv("DEV_DIR"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create DEV_DIR: %w", err)
		}
		devDir = dir
		devEnabled = true
	}

	if os.Getenv("LUMINA_DEBUG") != "1" {
		logger = zap.NewNop()
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(homeDir, ".lumina")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	writeSyncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, "debug.log"),
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     7, // Days
		Compress:   true,
	})
	setCore(writeSyncer)

	logger.Info("Debug logging started")
	return nil
}

// setCore installs a console-encoded core writing to ws and enables logging.
func setCore(ws zapcore.WriteSyncer) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "", // Hide level, markers carry it
		MessageKey:     "M",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		ws,
		zapcore.DebugLevel,
	)
	logger = zap.New(core)
	enabled = true
}

// IsEnabled returns whether debug logging is enabled
func IsEnabled() bool {
	return enabled
}

// Logger returns the underlying zap logger
func Logger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Sync flushes any buffered log entries
func Sync() error {
	if logger != nil {
		return logger.Sync()
	}
	return nil
}

// NextCall increments and returns the backend call counter
func NextCall() int {
	mu.Lock()
	defer mu.Unlock()
	callCount++
	return callCount
}

// CurrentCall returns the current backend call number
func CurrentCall() int {
	mu.Lock()
	defer mu.Unlock()
	return callCount
}

// GetCallPrefix returns the call prefix for file naming.
// Example: call-005
func GetCallPrefix(call int) string {
	return fmt.Sprintf("call-%03d", call)
}

// escapeForLog escapes newlines and tabs for single-line log output
func escapeForLog(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// LogTransition logs a session state transition
func LogTransition(name string, fields ...zap.Field) {
	if !enabled {
		return
	}
	logger.Info("[session] "+name, fields...)
}
