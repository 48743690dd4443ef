package observability

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// JobLogger returns a child logger with job-context fields.
func JobLogger(base *zap.Logger, jobID, workspaceID, lakehouse string) *zap.Logger {
	return base.With(
		zap.String("job_id", jobID),
		zap.String("workspace_id", workspaceID),
		zap.String("lakehouse", lakehouse),
	)
}
