package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seatkeeper/internal/config"
)

const serviceName = "seatkeeper"

// New builds the service logger from LOG_LEVEL and LOG_ENCODING. An unknown
// level falls back to info. Console encoding is meant for local runs and
// colours the level; json output keeps the production field names.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.InitialFields = map[string]interface{}{"service": serviceName}

	if cfg.Encoding == config.LogEncodingConsole {
		zcfg.Encoding = config.LogEncodingConsole
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.Sampling = nil
	}

	return zcfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
}
