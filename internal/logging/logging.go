// Package logging builds the zap logger from settings.
//
// The terminal UI owns stdout, so logs go to a file. An empty log path
// disables logging.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/handiism/modplan/internal/config"
)

// New builds a logger for the log settings in cfg.
func New(cfg *config.Settings) (*zap.Logger, error) {
	if cfg.LogPath == "" {
		return zap.NewNop(), nil
	}

	var zapCfg zap.Config
	switch cfg.LogFormat {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		zapCfg = zap.NewProductionConfig()
	}

	levelText := cfg.LogLevel
	if levelText == "" {
		levelText = "info"
	}
	level, err := zapcore.ParseLevel(levelText)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	zapCfg.OutputPaths = []string{cfg.LogPath}
	zapCfg.ErrorOutputPaths = []string{cfg.LogPath}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("app", cfg.AppName)), nil
}
