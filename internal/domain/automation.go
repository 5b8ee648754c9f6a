package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DaysOfWeek lists the day abbreviations in week order. Automations store
// days using exactly these spellings.
var DaysOfWeek = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// NormalizeDay maps any historical weekday spelling ("Monday", "MON", "mon")
// to its canonical three-letter abbreviation.
func NormalizeDay(s string) (string, bool) {
	if len(s) < 3 {
		return "", false
	}
	prefix := strings.ToLower(s[:3])
	for _, d := range DaysOfWeek {
		if strings.ToLower(d) == prefix {
			return d, true
		}
	}
	return "", false
}

// Automation is a scheduled trigger (time of day + weekday set) bound to an
// ordered list of actions. The client never executes automations; Active
// only gates whether the backend would fire it.
type Automation struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Time    string   `json:"time"` // 24-hour HH:MM
	Days    []string `json:"days"`
	Actions []Action `json:"actions"`
	Active  bool     `json:"active"`
}

// Clone returns an independent copy of the automation.
func (a Automation) Clone() Automation {
	cpy := a
	if a.Days != nil {
		cpy.Days = make([]string, len(a.Days))
		copy(cpy.Days, a.Days)
	}
	cpy.Actions = CloneActions(a.Actions)
	return cpy
}

// UnmarshalJSON decodes an automation, accepting both the canonical actions
// list and the legacy denormalized shape (a single action/actionValue pair
// applied to a deviceIds list). The enabled alias for active is honoured.
func (a *Automation) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID      string   `json:"id"`
		Name    string   `json:"name"`
		Time    string   `json:"time"`
		Days    []string `json:"days"`
		Actions []Action `json:"actions"`
		Active  *bool    `json:"active"`
		Enabled *bool    `json:"enabled"`

		// Legacy denormalized fields.
		Action      string   `json:"action"`
		ActionValue *float64 `json:"actionValue"`
		DeviceIDs   []string `json:"deviceIds"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	a.ID = wire.ID
	a.Name = wire.Name
	a.Time = wire.Time
	a.Actions = wire.Actions

	a.Days = nil
	for _, d := range wire.Days {
		if day, ok := NormalizeDay(d); ok {
			a.Days = append(a.Days, day)
		} else {
			return fmt.Errorf("%w: %q", ErrInvalidDay, d)
		}
	}

	switch {
	case wire.Active != nil:
		a.Active = *wire.Active
	case wire.Enabled != nil:
		a.Active = *wire.Enabled
	default:
		a.Active = false
	}

	if len(a.Actions) == 0 && wire.Action != "" {
		op, ok := NormalizeOp(wire.Action)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidOp, wire.Action)
		}
		for _, id := range wire.DeviceIDs {
			act := Action{Kind: KindDeviceControl, TargetID: id, Op: op}
			if wire.ActionValue != nil {
				v := *wire.ActionValue
				act.Value = &v
			}
			a.Actions = append(a.Actions, act)
		}
	}
	return nil
}

// ValidateAutomation checks an automation before it is sent to the gateway.
func ValidateAutomation(a *Automation) error {
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	if err := ValidateTime(a.Time); err != nil {
		return err
	}
	if len(a.Days) == 0 {
		return ErrNoDays
	}
	for _, d := range a.Days {
		if _, ok := NormalizeDay(d); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidDay, d)
		}
	}
	if len(a.Actions) == 0 {
		return ErrNoActions
	}
	for _, act := range a.Actions {
		if err := act.Validate(); err != nil {
			return err
		}
	}
	return nil
}
