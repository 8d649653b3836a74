package logs

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is a no-op until Initialize points it at a log file
	Logger  = zap.NewNop().Sugar()
	logFile *os.File
	mu      sync.Mutex
)

// Initialize reinitializes the logger to write debug.log in logDir.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	logPath := filepath.Join(logDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Warnw("failed to open log file", "path", logPath, "error", err)
		return err
	}

	if logFile != nil {
		Logger.Sync()
		logFile.Close()
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = "time"
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)

	logFile = f
	Logger = zap.New(core, zap.AddCaller()).Sugar().Named("promptboard")

	Logger.Infow("logger initialized", "path", logPath)

	return nil
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}

	Logger.Sync()
	err := logFile.Close()
	logFile = nil
	Logger = zap.NewNop().Sugar()
	return err
}
