// File: internal/logging/logger.go
package logging

import (
	"context"
	"io"
	"os"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/sirupsen/logrus"
)

// New 建立 JSON 格式的 logrus logger；out 為 nil 時輸出到 stdout
func New(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = os.Stdout
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger, nil
}

// QueryTracer 把 pgx 的查詢追蹤轉給 logrus；查詢本身以 debug 等級記錄，錯誤以 error 等級記錄
func QueryTracer(logger logrus.FieldLogger) *tracelog.TraceLog {
	return &tracelog.TraceLog{
		Logger:   tracelog.LoggerFunc(pgxLogFunc(logger)),
		LogLevel: tracelog.LogLevelDebug,
	}
}

func pgxLogFunc(logger logrus.FieldLogger) func(context.Context, tracelog.LogLevel, string, map[string]any) {
	return func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		entry := logger.WithFields(logrus.Fields(data)).WithField("component", "pgx")
		switch level {
		case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
			entry.Debug(msg)
		case tracelog.LogLevelInfo:
			entry.Info(msg)
		case tracelog.LogLevelWarn:
			entry.Warn(msg)
		default:
			entry.Error(msg)
		}
	}
}
