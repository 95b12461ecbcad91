package audit

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Trail is an append-only, line-oriented text log. The background workflow
// has no connected caller to report to, so the trail is the only record of
// how far a run progressed. Append never returns an error: a trail that
// cannot be written is reported once per line via the logger and otherwise
// ignored.
type Trail struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

func NewTrail(path string, logger *zap.Logger) *Trail {
	return &Trail{
		path:   path,
		logger: logger,
	}
}

// Append writes one newline-terminated line.
func (t *Trail) Append(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.logger.Warn("Failed to open audit trail", zap.String("path", t.path), zap.Error(err))
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		t.logger.Warn("Failed to append to audit trail", zap.String("path", t.path), zap.Error(err))
	}
}

func (t *Trail) Appendf(format string, args ...any) {
	t.Append(fmt.Sprintf(format, args...))
}
