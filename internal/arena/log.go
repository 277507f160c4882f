package arena

import "go.uber.org/zap"

// logger backs the package's lifecycle logging (reclaimer start, per-drain
// summaries, the fatal OS-exhaustion path). It defaults to a no-op core so
// that embedding this package costs nothing until a caller opts in with
// SetLogger.
var logger = zap.NewNop()

// SetLogger installs l as the package-wide logger, used from then on by
// every Allocator instance, including ones created before the call. Passing
// nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
