package lsys

import (
	"log/slog"
	"sync/atomic"
)

var (
	discard = slog.New(slog.DiscardHandler)
	logger  atomic.Pointer[slog.Logger]
)

func init() {
	logger.Store(discard)
}

// SetLogger routes the log output of lsys and its sub-packages to l.
// Nothing is logged until it is called; nil silences logging again.
// It may be called while renders are running.
//
// Completed renders and exports are logged at Info, declined or stopped
// renders at Warn, and pipeline stages at Debug:
//
//	lsys.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
