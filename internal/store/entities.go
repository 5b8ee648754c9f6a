package store

import (
	"sort"

	"github.com/sideduran/homeboard/internal/domain"
)

// Devices returns a copy of every device, sorted by name then id for
// deterministic iteration.
func (s *Store) Devices() []domain.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Device, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, d.Clone())
	}
	sortByName(out, func(d domain.Device) (string, string) { return d.Name, d.ID })
	return out
}

// Device returns a copy of one device.
func (s *Store) Device(id string) (domain.Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.devices[id]
	return d.Clone(), ok
}

// ReplaceDevices swaps the whole device table, as after a gateway refresh.
func (s *Store) ReplaceDevices(devices []domain.Device) {
	s.mu.Lock()
	s.devices = make(map[string]domain.Device, len(devices))
	for _, d := range devices {
		s.devices[d.ID] = d.Clone()
	}
	s.mu.Unlock()
	s.notify(KindDevice, "")
}

// Rooms returns a copy of every room, sorted by name then id.
func (s *Store) Rooms() []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r.Clone())
	}
	sortByName(out, func(r domain.Room) (string, string) { return r.Name, r.ID })
	return out
}

// Room returns a copy of one room.
func (s *Store) Room(id string) (domain.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r.Clone(), ok
}

// RoomName resolves a room id to its display name, falling back to the
// "Unknown Room" sentinel.
func (s *Store) RoomName(id string) string {
	if r, ok := s.Room(id); ok {
		return r.Name
	}
	return domain.UnknownRoomName
}

// ReplaceRooms swaps the whole room table.
func (s *Store) ReplaceRooms(rooms []domain.Room) {
	s.mu.Lock()
	s.rooms = make(map[string]domain.Room, len(rooms))
	for _, r := range rooms {
		s.rooms[r.ID] = r.Clone()
	}
	s.mu.Unlock()
	s.notify(KindRoom, "")
}

// Scenes returns a copy of every scene, sorted by name then id.
func (s *Store) Scenes() []domain.Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Scene, 0, len(s.scenes))
	for _, sc := range s.scenes {
		out = append(out, sc.Clone())
	}
	sortByName(out, func(sc domain.Scene) (string, string) { return sc.Name, sc.ID })
	return out
}

// Scene returns a copy of one scene.
func (s *Store) Scene(id string) (domain.Scene, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.scenes[id]
	return sc.Clone(), ok
}

// ReplaceScenes swaps the whole scene table.
func (s *Store) ReplaceScenes(scenes []domain.Scene) {
	s.mu.Lock()
	s.scenes = make(map[string]domain.Scene, len(scenes))
	for _, sc := range scenes {
		s.scenes[sc.ID] = sc.Clone()
	}
	s.mu.Unlock()
	s.notify(KindScene, "")
}

// Automations returns a copy of every automation, sorted by name then id.
func (s *Store) Automations() []domain.Automation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Automation, 0, len(s.automations))
	for _, a := range s.automations {
		out = append(out, a.Clone())
	}
	sortByName(out, func(a domain.Automation) (string, string) { return a.Name, a.ID })
	return out
}

// Automation returns a copy of one automation.
func (s *Store) Automation(id string) (domain.Automation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.automations[id]
	return a.Clone(), ok
}

// ReplaceAutomations swaps the whole automation table.
func (s *Store) ReplaceAutomations(automations []domain.Automation) {
	s.mu.Lock()
	s.automations = make(map[string]domain.Automation, len(automations))
	for _, a := range automations {
		s.automations[a.ID] = a.Clone()
	}
	s.mu.Unlock()
	s.notify(KindAutomation, "")
}

// Activities returns a copy of the activity feed in gateway (chronological)
// order.
func (s *Store) Activities() []domain.ActivityLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActivityLog, len(s.activities))
	copy(out, s.activities)
	return out
}

// ReplaceActivities swaps the activity feed.
func (s *Store) ReplaceActivities(logs []domain.ActivityLog) {
	s.mu.Lock()
	s.activities = make([]domain.ActivityLog, len(logs))
	copy(s.activities, logs)
	s.mu.Unlock()
	s.notify(KindActivity, "")
}

// AppendActivity adds one entry to the feed (push updates from the state
// feed).
func (s *Store) AppendActivity(entry domain.ActivityLog) {
	s.mu.Lock()
	s.activities = append(s.activities, entry)
	s.mu.Unlock()
	s.notify(KindActivity, entry.ID)
}

// Security returns the current security status.
func (s *Store) Security() domain.SecurityStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.security
}

// SetSecurity replaces the security status.
func (s *Store) SetSecurity(status domain.SecurityStatus) {
	s.mu.Lock()
	s.security = status
	s.mu.Unlock()
	s.notify(KindSecurity, "")
}

// sortByName orders a slice by a (name, id) key.
func sortByName[T any](items []T, key func(T) (string, string)) {
	sort.Slice(items, func(i, j int) bool {
		ni, ii := key(items[i])
		nj, ij := key(items[j])
		if ni != nj {
			return ni < nj
		}
		return ii < ij
	})
}
