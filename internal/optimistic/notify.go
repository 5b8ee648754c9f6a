package optimistic

import "sync"

// Level classifies a notification for presentation.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a user-facing message emitted by the controller, typically
// rendered as a toast or banner.
type Notification struct {
	Level    Level
	Message  string
	EntityID string
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use; the controller calls Notify from dispatch goroutines.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Recorder is a Notifier that retains everything it receives, for tests.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.notifications = append(r.notifications, n)
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}
