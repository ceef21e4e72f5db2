package notify

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
)

// LogNotifier records reminders in memory and writes them to the log. It
// stands in for a platform notification center.
type LogNotifier struct {
	log logging.Logger

	mu      sync.Mutex
	pending map[int64]Reminder
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log, pending: make(map[int64]Reminder)}
}

func (n *LogNotifier) Schedule(ctx context.Context, id int64, title, message string, whenUTC time.Time) error {
	n.mu.Lock()
	n.pending[id] = Reminder{ID: id, Title: title, Message: message, When: whenUTC}
	n.mu.Unlock()
	n.log.Info(ctx, "reminder scheduled", "id", id, "title", title, "message", message, "when", whenUTC)
	return nil
}

func (n *LogNotifier) Cancel(ctx context.Context, id int64) error {
	n.mu.Lock()
	delete(n.pending, id)
	n.mu.Unlock()
	n.log.Debug(ctx, "reminder cancelled", "id", id)
	return nil
}

// Pending returns the scheduled reminders.
func (n *LogNotifier) Pending() []Reminder {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Reminder, 0, len(n.pending))
	for _, r := range n.pending {
		out = append(out, r)
	}
	return out
}
