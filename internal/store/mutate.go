package store

import "github.com/sideduran/homeboard/internal/domain"

// Undo restores the state captured before an optimistic mutation. Invoking
// it more than once is harmless but pointless; the second call re-applies
// the same snapshot.
type Undo func()

// MutateDevice applies fn to a copy of the device and stores the result,
// returning an undo that restores the pre-mutation snapshot. Returns false
// when the device does not exist (the mutation is skipped).
func (s *Store) MutateDevice(id string, fn func(*domain.Device)) (Undo, bool) {
	s.mu.Lock()
	prev, ok := s.devices[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	next := prev.Clone()
	fn(&next)
	next.ID = id // mutations never move an entity
	s.devices[id] = next
	s.mu.Unlock()

	s.notify(KindDevice, id)
	return func() { s.restoreDevice(id, prev) }, true
}

// PutDevice upserts a device, returning an undo that restores the previous
// entry or removes the device if it was new.
func (s *Store) PutDevice(d domain.Device) Undo {
	s.mu.Lock()
	prev, existed := s.devices[d.ID]
	s.devices[d.ID] = d.Clone()
	s.mu.Unlock()
	s.notify(KindDevice, d.ID)

	if existed {
		return func() { s.restoreDevice(d.ID, prev) }
	}
	return func() { s.removeDevice(d.ID) }
}

// DeleteDevice removes a device, returning an undo that reinstates it.
// Returns false when the device does not exist.
func (s *Store) DeleteDevice(id string) (Undo, bool) {
	s.mu.Lock()
	prev, ok := s.devices[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	delete(s.devices, id)
	s.mu.Unlock()

	s.notify(KindDevice, id)
	return func() { s.restoreDevice(id, prev) }, true
}

func (s *Store) restoreDevice(id string, prev domain.Device) {
	s.mu.Lock()
	s.devices[id] = prev
	s.mu.Unlock()
	s.notify(KindDevice, id)
}

func (s *Store) removeDevice(id string) {
	s.mu.Lock()
	delete(s.devices, id)
	s.mu.Unlock()
	s.notify(KindDevice, id)
}

// MutateScene applies fn to a copy of the scene, as MutateDevice does for
// devices.
func (s *Store) MutateScene(id string, fn func(*domain.Scene)) (Undo, bool) {
	s.mu.Lock()
	prev, ok := s.scenes[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	next := prev.Clone()
	fn(&next)
	next.ID = id
	s.scenes[id] = next
	s.mu.Unlock()

	s.notify(KindScene, id)
	return func() { s.restoreScene(id, prev) }, true
}

// PutScene upserts a scene with undo, as PutDevice does for devices.
func (s *Store) PutScene(sc domain.Scene) Undo {
	s.mu.Lock()
	prev, existed := s.scenes[sc.ID]
	s.scenes[sc.ID] = sc.Clone()
	s.mu.Unlock()
	s.notify(KindScene, sc.ID)

	if existed {
		return func() { s.restoreScene(sc.ID, prev) }
	}
	return func() {
		s.mu.Lock()
		delete(s.scenes, sc.ID)
		s.mu.Unlock()
		s.notify(KindScene, sc.ID)
	}
}

// DeleteScene removes a scene with undo. Returns false when absent.
func (s *Store) DeleteScene(id string) (Undo, bool) {
	s.mu.Lock()
	prev, ok := s.scenes[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	delete(s.scenes, id)
	s.mu.Unlock()

	s.notify(KindScene, id)
	return func() { s.restoreScene(id, prev) }, true
}

func (s *Store) restoreScene(id string, prev domain.Scene) {
	s.mu.Lock()
	s.scenes[id] = prev
	s.mu.Unlock()
	s.notify(KindScene, id)
}

// MutateAutomation applies fn to a copy of the automation, as MutateDevice
// does for devices.
func (s *Store) MutateAutomation(id string, fn func(*domain.Automation)) (Undo, bool) {
	s.mu.Lock()
	prev, ok := s.automations[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	next := prev.Clone()
	fn(&next)
	next.ID = id
	s.automations[id] = next
	s.mu.Unlock()

	s.notify(KindAutomation, id)
	return func() { s.restoreAutomation(id, prev) }, true
}

// PutAutomation upserts an automation with undo.
func (s *Store) PutAutomation(a domain.Automation) Undo {
	s.mu.Lock()
	prev, existed := s.automations[a.ID]
	s.automations[a.ID] = a.Clone()
	s.mu.Unlock()
	s.notify(KindAutomation, a.ID)

	if existed {
		return func() { s.restoreAutomation(a.ID, prev) }
	}
	return func() {
		s.mu.Lock()
		delete(s.automations, a.ID)
		s.mu.Unlock()
		s.notify(KindAutomation, a.ID)
	}
}

// DeleteAutomation removes an automation with undo. Returns false when
// absent.
func (s *Store) DeleteAutomation(id string) (Undo, bool) {
	s.mu.Lock()
	prev, ok := s.automations[id]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	delete(s.automations, id)
	s.mu.Unlock()

	s.notify(KindAutomation, id)
	return func() { s.restoreAutomation(id, prev) }, true
}

func (s *Store) restoreAutomation(id string, prev domain.Automation) {
	s.mu.Lock()
	s.automations[id] = prev
	s.mu.Unlock()
	s.notify(KindAutomation, id)
}

// PutRoom upserts a room with undo.
func (s *Store) PutRoom(r domain.Room) Undo {
	s.mu.Lock()
	prev, existed := s.rooms[r.ID]
	s.rooms[r.ID] = r.Clone()
	s.mu.Unlock()
	s.notify(KindRoom, r.ID)

	if existed {
		return func() {
			s.mu.Lock()
			s.rooms[r.ID] = prev
			s.mu.Unlock()
			s.notify(KindRoom, r.ID)
		}
	}
	return func() {
		s.mu.Lock()
		delete(s.rooms, r.ID)
		s.mu.Unlock()
		s.notify(KindRoom, r.ID)
	}
}

// SwapSecurity replaces the security status and returns an undo restoring
// the previous value.
func (s *Store) SwapSecurity(status domain.SecurityStatus) Undo {
	s.mu.Lock()
	prev := s.security
	s.security = status
	s.mu.Unlock()
	s.notify(KindSecurity, "")

	return func() { s.SetSecurity(prev) }
}
