package observability

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cancelshield/api/internal/config"
)

// NewLogger builds the service logger. Development runs get a colored console
// encoder; everything else logs JSON with sampling. Every entry carries the
// service name and version.
func NewLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	logger, err := loggerConfig(cfg).Build()
	if err != nil {
		return nil, err
	}
	fields := make([]zap.Field, 0, 2)
	if cfg.Service != "" {
		fields = append(fields, zap.String("service", cfg.Service))
	}
	if cfg.Version != "" {
		fields = append(fields, zap.String("version", cfg.Version))
	}
	return logger.With(fields...), nil
}

func loggerConfig(cfg config.LoggerConfig) zap.Config {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.MessageKey = "message"
		zapCfg.EncoderConfig.TimeKey = "ts"
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(cfg.Format) {
	case "json":
		zapCfg.Encoding = "json"
		zapCfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case "console":
		zapCfg.Encoding = "console"
	}

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg
}
