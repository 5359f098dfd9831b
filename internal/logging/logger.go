// Where: cli/internal/logging/logger.go
// What: Per-run zap logger setup.
// Why: Full debug trail in a run-scoped file, warnings and up on stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewRunLogger creates a logger that tees a debug-level file core (one file
// per day and user) with a warn-level stderr core. Returns the logger and the
// log file path.
func NewRunLogger(dir, user string, now time.Time) (*zap.Logger, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("azsnap_%s_%s.log", now.Format("20060102"), user))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)
	stderrCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(os.Stderr),
		zapcore.WarnLevel,
	)

	return zap.New(zapcore.NewTee(fileCore, stderrCore)), path, nil
}
