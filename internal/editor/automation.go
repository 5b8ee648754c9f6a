package editor

import (
	"context"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// AutomationSaver is the gateway surface the automation editor submits to.
type AutomationSaver interface {
	CreateAutomation(ctx context.Context, a domain.Automation) (domain.Automation, error)
	UpdateAutomation(ctx context.Context, a domain.Automation) error
}

// AutomationEditor is the draft behind the automation create/edit form.
type AutomationEditor struct {
	store *store.Store
	saver AutomationSaver

	mode Mode
	id   string

	Name    string
	Time    string // 24-hour HH:MM
	Days    []string
	Actions []domain.Action
	Active  bool

	Err error
}

// NewAutomationEditor creates a closed automation editor.
func NewAutomationEditor(st *store.Store, saver AutomationSaver) *AutomationEditor {
	return &AutomationEditor{store: st, saver: saver}
}

func (e *AutomationEditor) Mode() Mode { return e.mode }

// EditingID returns the id of the automation being edited, or "" when
// creating.
func (e *AutomationEditor) EditingID() string { return e.id }

// OpenNew starts a blank draft. New automations default to enabled.
func (e *AutomationEditor) OpenNew() {
	e.mode = ModeCreating
	e.id = ""
	e.Name = ""
	e.Time = ""
	e.Days = nil
	e.Actions = nil
	e.Active = true
	e.Err = nil
}

// OpenEdit hydrates the full draft (schedule and the complete action list)
// from the stored automation. Returns false when it no longer exists.
func (e *AutomationEditor) OpenEdit(id string) bool {
	a, ok := e.store.Automation(id)
	if !ok {
		return false
	}
	e.mode = ModeEditing
	e.id = a.ID
	e.Name = a.Name
	e.Time = a.Time
	e.Days = append([]string(nil), a.Days...)
	e.Actions = domain.CloneActions(a.Actions)
	e.Active = a.Active
	e.Err = nil
	return true
}

// Close abandons the draft.
func (e *AutomationEditor) Close() {
	e.mode = ModeClosed
	e.id = ""
	e.Name = ""
	e.Time = ""
	e.Days = nil
	e.Actions = nil
	e.Active = false
	e.Err = nil
}

// ToggleDay adds or removes a weekday, accepting any historical spelling.
// Unrecognized days are ignored.
func (e *AutomationEditor) ToggleDay(day string) {
	canonical, ok := domain.NormalizeDay(day)
	if !ok {
		return
	}
	for i, d := range e.Days {
		if d == canonical {
			e.Days = append(e.Days[:i], e.Days[i+1:]...)
			return
		}
	}
	e.Days = append(e.Days, canonical)
}

// HasDay reports whether the draft schedule includes the weekday.
func (e *AutomationEditor) HasDay(day string) bool {
	canonical, ok := domain.NormalizeDay(day)
	if !ok {
		return false
	}
	for _, d := range e.Days {
		if d == canonical {
			return true
		}
	}
	return false
}

// ToggleDevice adds the device to the draft with its default operation, or
// removes it if already present.
func (e *AutomationEditor) ToggleDevice(deviceID string) {
	d, ok := e.store.Device(deviceID)
	if !ok {
		return
	}
	e.Actions = toggleDeviceAction(e.Actions, d)
}

// SetActionOp overrides the operation for the draft action targeting the
// device.
func (e *AutomationEditor) SetActionOp(deviceID string, op domain.Op, value *float64) {
	setActionOp(e.Actions, deviceID, op, value)
}

func (e *AutomationEditor) draft() domain.Automation {
	return domain.Automation{
		ID:      e.id,
		Name:    e.Name,
		Time:    e.Time,
		Days:    append([]string(nil), e.Days...),
		Actions: domain.CloneActions(e.Actions),
		Active:  e.Active,
	}
}

// Validate checks the draft without submitting it.
func (e *AutomationEditor) Validate() error {
	a := e.draft()
	return domain.ValidateAutomation(&a)
}

// Save validates and submits the draft. On success the stored copy lands in
// the store and the editor closes; on failure the editor stays open with
// the draft intact and Err set.
func (e *AutomationEditor) Save(ctx context.Context) error {
	if e.mode == ModeClosed || e.mode == ModeSubmitting {
		return nil
	}
	a := e.draft()
	if err := domain.ValidateAutomation(&a); err != nil {
		e.Err = err
		return err
	}

	creating := e.mode == ModeCreating
	prev := e.mode
	e.mode = ModeSubmitting

	if creating {
		stored, err := e.saver.CreateAutomation(ctx, a)
		if err != nil {
			e.mode = prev
			e.Err = err
			return err
		}
		e.store.PutAutomation(stored)
	} else {
		if err := e.saver.UpdateAutomation(ctx, a); err != nil {
			e.mode = prev
			e.Err = err
			return err
		}
		e.store.PutAutomation(a)
	}

	e.Close()
	return nil
}
