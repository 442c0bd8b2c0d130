// Package notify is the single-slot notification channel: one banner,
// most recent wins, auto-dismissed after a fixed duration.
package notify

import (
	"sync"
	"time"
)

type Level int

const (
	Success Level = iota
	Failure
)

type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier holds at most one pending notification. Publish overwrites any
// prior one and restarts the auto-dismiss timer. An optional OnChange hook
// observes publishes and dismissals (nil Notification on dismiss).
type Notifier struct {
	ttl      time.Duration
	onChange func(*Notification)

	mu      sync.Mutex
	current *Notification
	seq     uint64
	timer   *time.Timer
}

func New(ttl time.Duration, onChange func(*Notification)) *Notifier {
	return &Notifier{ttl: ttl, onChange: onChange}
}

func (n *Notifier) Publish(level Level, message string) {
	n.mu.Lock()
	note := &Notification{Level: level, Message: message, At: time.Now()}
	n.current = note
	n.seq++
	seq := n.seq
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(seq) })
	hook := n.onChange
	n.mu.Unlock()

	if hook != nil {
		hook(note)
	}
}

// expire clears the slot only if no newer notification replaced seq's.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	if n.seq != seq || n.current == nil {
		n.mu.Unlock()
		return
	}
	n.current = nil
	hook := n.onChange
	n.mu.Unlock()

	if hook != nil {
		hook(nil)
	}
}

// Dismiss clears the slot immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if n.current == nil {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.seq++
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	hook := n.onChange
	n.mu.Unlock()

	if hook != nil {
		hook(nil)
	}
}

// Current returns the pending notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}
