package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/types"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Init configures the process-wide logger. An unknown level falls back to info,
// format is either "json" or "text".
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "text") {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	log.SetFormatter(&logrus.JSONFormatter{})
}

// Base returns the underlying logrus logger
func Base() *logrus.Logger {
	return log
}

// WithRequestId stores a request id on the context so that every log line
// emitted through Logger(ctx) carries it.
func WithRequestId(ctx context.Context, id types.UID) context.Context {
	return context.WithValue(ctx, requestIDKey, string(id))
}

// RequestId returns the request id stored on ctx, if any.
func RequestId(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Logger returns a log entry scoped to ctx.
func Logger(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(log)
	if id := RequestId(ctx); id != "" {
		entry = entry.WithField(string(requestIDKey), id)
	}
	return entry
}
