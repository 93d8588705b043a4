// Package sink holds the notification sinks mutation outcomes are delivered
// to. One Notify call per mutation attempt; never queued, never retried.
package sink

import (
	"log/slog"
	"sync"

	"github.com/MalleshPillai/creation-2k26-nexus/contract"
)

// SlogNotifier writes notifications to the structured log. It is the default
// sink for headless runs.
type SlogNotifier struct {
	log *slog.Logger
}

func NewSlogNotifier(log *slog.Logger) *SlogNotifier {
	return &SlogNotifier{log: log}
}

func (n *SlogNotifier) Notify(kind contract.NotificationKind, title, detail string) {
	switch kind {
	case contract.NotifyError:
		n.log.Error(title, "detail", detail)
	default:
		n.log.Info(title, "kind", kind, "detail", detail)
	}
}

type Notification struct {
	Kind   contract.NotificationKind
	Title  string
	Detail string
}

// CollectingNotifier buffers notifications in memory so a frontend (or a
// test) can drain and render them.
type CollectingNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func NewCollectingNotifier() *CollectingNotifier {
	return &CollectingNotifier{}
}

func (n *CollectingNotifier) Notify(kind contract.NotificationKind, title, detail string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, Notification{Kind: kind, Title: title, Detail: detail})
}

// Drain returns the buffered notifications and resets the buffer.
func (n *CollectingNotifier) Drain() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	drained := n.notifications
	n.notifications = nil
	return drained
}
