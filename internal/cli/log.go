package cli

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger: leveled, with short wall-clock stamps
// ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logElapsed logs msg at info level with keyvals and the time since start,
// e.g. `replayed taps taps=3 active=2 elapsed=12ms`.
func logElapsed(l *log.Logger, start time.Time, msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(start).Round(time.Millisecond))
	l.Info(msg, keyvals...)
}

type requestLoggerKey struct{}

// withRequestLogger returns r carrying l, tagged by the serve middleware with
// the chi request id.
func withRequestLogger(r *http.Request, l *log.Logger) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestLoggerKey{}, l))
}

// requestLogger returns the logger attached by withRequestLogger, or
// log.Default() outside the serve middleware.
func requestLogger(r *http.Request) *log.Logger {
	if l, ok := r.Context().Value(requestLoggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
