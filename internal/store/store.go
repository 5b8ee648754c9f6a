package store

import (
	"sync"

	"github.com/sideduran/homeboard/internal/domain"
)

// EntityKind identifies which table an event concerns.
type EntityKind string

// Entity kinds carried by change events.
const (
	KindDevice     EntityKind = "device"
	KindRoom       EntityKind = "room"
	KindScene      EntityKind = "scene"
	KindAutomation EntityKind = "automation"
	KindActivity   EntityKind = "activity"
	KindSecurity   EntityKind = "security"
)

// Event announces a change to one table. ID is empty for whole-table
// replacements and for the security status.
type Event struct {
	Kind EntityKind
	ID   string
}

// subscriberBuffer is the event channel capacity per subscriber.
const subscriberBuffer = 16

// Store is the single in-memory source of truth for the dashboard core.
// All methods are safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	devices     map[string]domain.Device
	rooms       map[string]domain.Room
	scenes      map[string]domain.Scene
	automations map[string]domain.Automation
	activities  []domain.ActivityLog
	security    domain.SecurityStatus

	subMu sync.Mutex
	subs  map[chan Event]struct{}
}

// New creates an empty store. Security defaults to disarmed until the first
// refresh reconciles it with the gateway.
func New() *Store {
	return &Store{
		devices:     make(map[string]domain.Device),
		rooms:       make(map[string]domain.Room),
		scenes:      make(map[string]domain.Scene),
		automations: make(map[string]domain.Automation),
		security:    domain.SecurityDisarmed,
		subs:        make(map[chan Event]struct{}),
	}
}

// Subscribe registers a change listener. The returned channel is buffered;
// events are dropped, not blocked on, when the subscriber falls behind.
// Callers must Unsubscribe when done.
func (s *Store) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(ch chan Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

// notify fans an event out to all subscribers without blocking.
func (s *Store) notify(kind EntityKind, id string) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- Event{Kind: kind, ID: id}:
		default:
			// Subscriber is behind; it will re-read on its next event.
		}
	}
}

// Snapshot is a point-in-time copy of every table, used for persistence.
type Snapshot struct {
	Devices     []domain.Device        `json:"devices"`
	Rooms       []domain.Room          `json:"rooms"`
	Scenes      []domain.Scene         `json:"scenes"`
	Automations []domain.Automation    `json:"automations"`
	Activities  []domain.ActivityLog   `json:"activities"`
	Security    domain.SecurityStatus  `json:"security"`
}

// Snapshot captures the current state of every table.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Devices:     s.Devices(),
		Rooms:       s.Rooms(),
		Scenes:      s.Scenes(),
		Automations: s.Automations(),
		Activities:  s.Activities(),
		Security:    s.Security(),
	}
}

// Restore replaces every table from a snapshot. Used to seed the store with
// the last-known state before the first gateway refresh.
func (s *Store) Restore(snap Snapshot) {
	s.ReplaceDevices(snap.Devices)
	s.ReplaceRooms(snap.Rooms)
	s.ReplaceScenes(snap.Scenes)
	s.ReplaceAutomations(snap.Automations)
	s.ReplaceActivities(snap.Activities)
	if snap.Security != "" {
		s.SetSecurity(snap.Security)
	}
}
