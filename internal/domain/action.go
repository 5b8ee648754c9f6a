package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ActionKind discriminates the action tagged union.
type ActionKind string

// Action kinds. The wire spellings match the backend.
const (
	KindScene         ActionKind = "SCENE"
	KindDeviceControl ActionKind = "DEVICE_CONTROL"
)

// Op is a canonical device or scene operation.
type Op string

// Canonical operations.
const (
	OpTurnOn         Op = "turn_on"
	OpTurnOff        Op = "turn_off"
	OpLock           Op = "lock"
	OpUnlock         Op = "unlock"
	OpSetTemperature Op = "set_temperature"
	OpSetBrightness  Op = "set_brightness"
	OpStartRecording Op = "start_recording"
	OpStopRecording  Op = "stop_recording"
	OpActivate       Op = "activate"
)

// legacyOps maps every historical operation spelling to its canonical form.
// The backend has emitted SCREAMING_SNAKE, camelCase and snake_case variants
// across revisions.
var legacyOps = map[string]Op{
	"turn_on":         OpTurnOn,
	"turnon":          OpTurnOn,
	"turn_off":        OpTurnOff,
	"turnoff":         OpTurnOff,
	"lock":            OpLock,
	"unlock":          OpUnlock,
	"set_temperature": OpSetTemperature,
	"set_temp":        OpSetTemperature,
	"settemperature":  OpSetTemperature,
	"set_brightness":  OpSetBrightness,
	"setbrightness":   OpSetBrightness,
	"record":          OpStartRecording,
	"start_recording": OpStartRecording,
	"startrecording":  OpStartRecording,
	"stop_recording":  OpStopRecording,
	"stop_rec":        OpStopRecording,
	"stoprecording":   OpStopRecording,
	"activate":        OpActivate,
}

// NormalizeOp maps any historical operation spelling to its canonical form.
func NormalizeOp(s string) (Op, bool) {
	op, ok := legacyOps[strings.ToLower(s)]
	return op, ok
}

// legacyKinds maps historical action kind spellings, which drifted the same
// way the ops did.
var legacyKinds = map[string]ActionKind{
	"scene":          KindScene,
	"device_control": KindDeviceControl,
	"devicecontrol":  KindDeviceControl,
}

// NormalizeKind maps any historical kind spelling to its canonical form.
func NormalizeKind(s string) (ActionKind, bool) {
	k, ok := legacyKinds[strings.ToLower(s)]
	return k, ok
}

// DefaultOp returns the operation a freshly selected device defaults to,
// by device type. Thermostats additionally default to 22°C.
func DefaultOp(t DeviceType) (Op, *float64) {
	switch t {
	case TypeLock:
		return OpLock, nil
	case TypeCamera:
		return OpStartRecording, nil
	case TypeThermostat:
		v := defaultTargetTemperature
		return OpSetTemperature, &v
	default:
		return OpTurnOn, nil
	}
}

const defaultTargetTemperature = 22.0

// Action is the single canonical action representation used by scenes and
// automations alike: activate a scene, or apply an operation to a device.
type Action struct {
	Kind     ActionKind `json:"type"`
	TargetID string     `json:"targetId"`
	Op       Op         `json:"action,omitempty"`
	Value    *float64   `json:"value,omitempty"`
}

// Clone returns an independent copy of the action.
func (a Action) Clone() Action {
	cpy := a
	if a.Value != nil {
		v := *a.Value
		cpy.Value = &v
	}
	return cpy
}

// CloneActions deep-copies a slice of actions.
func CloneActions(actions []Action) []Action {
	if actions == nil {
		return nil
	}
	cpy := make([]Action, len(actions))
	for i, a := range actions {
		cpy[i] = a.Clone()
	}
	return cpy
}

// UnmarshalJSON decodes an action, normalizing legacy kind and operation
// spellings to their canonical forms.
func (a *Action) UnmarshalJSON(data []byte) error {
	var wire struct {
		Kind     string   `json:"type"`
		TargetID string   `json:"targetId"`
		DeviceID string   `json:"deviceId"`   // legacy scene-action field
		Op       string   `json:"action"`
		OpLegacy string   `json:"actionType"` // legacy scene-action field
		Value    *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	if wire.Kind == "" {
		// Legacy scene actions carried no kind; they always target devices.
		a.Kind = KindDeviceControl
	} else {
		kind, ok := NormalizeKind(wire.Kind)
		if !ok {
			return fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, wire.Kind)
		}
		a.Kind = kind
	}

	a.TargetID = wire.TargetID
	if a.TargetID == "" {
		a.TargetID = wire.DeviceID
	}

	raw := wire.Op
	if raw == "" {
		raw = wire.OpLegacy
	}
	if raw != "" {
		op, ok := NormalizeOp(raw)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidOp, raw)
		}
		a.Op = op
	} else {
		a.Op = ""
	}

	a.Value = wire.Value
	return nil
}

// Validate checks the action for a usable target and operation.
func (a Action) Validate() error {
	if a.TargetID == "" {
		return fmt.Errorf("%w: missing target", ErrInvalidAction)
	}
	switch a.Kind {
	case KindScene:
		// Scene activation needs no operation.
	case KindDeviceControl:
		if a.Op == "" {
			return fmt.Errorf("%w: missing operation", ErrInvalidAction)
		}
		if _, ok := NormalizeOp(string(a.Op)); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidOp, a.Op)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
	}
	return nil
}
