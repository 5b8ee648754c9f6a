package domain

import "encoding/json"

// Scene is a named set of device actions activated on demand. Active is
// server-authoritative: it flips only via the activate endpoint (or when the
// backend deactivates a scene because one of its devices was controlled
// manually), never by client-side computation.
type Scene struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Actions []Action `json:"actions"`
	Active  bool     `json:"active"`
}

// Clone returns an independent copy of the scene.
func (s Scene) Clone() Scene {
	cpy := s
	cpy.Actions = CloneActions(s.Actions)
	return cpy
}

// DeviceIDs returns the ids of the devices this scene touches, in action order.
func (s Scene) DeviceIDs() []string {
	ids := make([]string, 0, len(s.Actions))
	seen := make(map[string]struct{}, len(s.Actions))
	for _, a := range s.Actions {
		if a.Kind != KindDeviceControl {
			continue
		}
		if _, dup := seen[a.TargetID]; dup {
			continue
		}
		seen[a.TargetID] = struct{}{}
		ids = append(ids, a.TargetID)
	}
	return ids
}

// References reports whether the scene contains an action targeting deviceID.
func (s Scene) References(deviceID string) bool {
	for _, a := range s.Actions {
		if a.Kind == KindDeviceControl && a.TargetID == deviceID {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes a scene, accepting both the canonical actions list
// and the legacy flat deviceIds list. Legacy device references become
// turn_on actions; the type-aware defaults only ever applied in the editor.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Actions   []Action `json:"actions"`
		DeviceIDs []string `json:"deviceIds"`
		Active    bool     `json:"active"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	s.ID = wire.ID
	s.Name = wire.Name
	s.Active = wire.Active
	s.Actions = wire.Actions

	if len(s.Actions) == 0 && len(wire.DeviceIDs) > 0 {
		s.Actions = make([]Action, 0, len(wire.DeviceIDs))
		for _, id := range wire.DeviceIDs {
			s.Actions = append(s.Actions, Action{
				Kind:     KindDeviceControl,
				TargetID: id,
				Op:       OpTurnOn,
			})
		}
	}
	return nil
}

// ValidateScene checks a scene before it is sent to the gateway.
func ValidateScene(s *Scene) error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if len(s.Actions) == 0 {
		return ErrNoActions
	}
	for _, a := range s.Actions {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}
