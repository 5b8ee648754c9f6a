package editor

import (
	"context"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// SceneSaver is the gateway surface the scene editor submits to.
type SceneSaver interface {
	CreateScene(ctx context.Context, s domain.Scene) (domain.Scene, error)
	UpdateScene(ctx context.Context, s domain.Scene) error
}

// SceneEditor is the draft behind the scene create/edit form.
type SceneEditor struct {
	store *store.Store
	saver SceneSaver

	mode Mode
	id   string // empty while creating

	Name    string
	Actions []domain.Action

	// Err holds the most recent validation or submission error, cleared on
	// the next state transition.
	Err error
}

// NewSceneEditor creates a closed scene editor.
func NewSceneEditor(st *store.Store, saver SceneSaver) *SceneEditor {
	return &SceneEditor{store: st, saver: saver}
}

func (e *SceneEditor) Mode() Mode { return e.mode }

// EditingID returns the id of the scene being edited, or "" when creating.
func (e *SceneEditor) EditingID() string { return e.id }

// OpenNew starts a blank draft.
func (e *SceneEditor) OpenNew() {
	e.mode = ModeCreating
	e.id = ""
	e.Name = ""
	e.Actions = nil
	e.Err = nil
}

// OpenEdit hydrates the draft from the stored scene, including its complete
// action list. Returns false when the scene no longer exists.
func (e *SceneEditor) OpenEdit(id string) bool {
	sc, ok := e.store.Scene(id)
	if !ok {
		return false
	}
	e.mode = ModeEditing
	e.id = sc.ID
	e.Name = sc.Name
	e.Actions = domain.CloneActions(sc.Actions)
	e.Err = nil
	return true
}

// Close abandons the draft.
func (e *SceneEditor) Close() {
	e.mode = ModeClosed
	e.id = ""
	e.Name = ""
	e.Actions = nil
	e.Err = nil
}

// ToggleDevice adds the device to the draft with its default operation, or
// removes it if already present. Unknown devices are ignored.
func (e *SceneEditor) ToggleDevice(deviceID string) {
	d, ok := e.store.Device(deviceID)
	if !ok {
		return
	}
	e.Actions = toggleDeviceAction(e.Actions, d)
}

// SetActionOp overrides the operation for the draft action targeting the
// device.
func (e *SceneEditor) SetActionOp(deviceID string, op domain.Op, value *float64) {
	setActionOp(e.Actions, deviceID, op, value)
}

// HasDevice reports whether the draft contains an action for the device.
func (e *SceneEditor) HasDevice(deviceID string) bool {
	for _, a := range e.Actions {
		if a.TargetID == deviceID {
			return true
		}
	}
	return false
}

func (e *SceneEditor) draft() domain.Scene {
	return domain.Scene{
		ID:      e.id,
		Name:    e.Name,
		Actions: domain.CloneActions(e.Actions),
	}
}

// Validate checks the draft without submitting it.
func (e *SceneEditor) Validate() error {
	sc := e.draft()
	return domain.ValidateScene(&sc)
}

// Save validates and submits the draft. On success the stored copy lands in
// the store and the editor closes. On failure the editor stays open, the
// draft intact, with Err set.
func (e *SceneEditor) Save(ctx context.Context) error {
	if e.mode == ModeClosed || e.mode == ModeSubmitting {
		return nil
	}
	sc := e.draft()
	if err := domain.ValidateScene(&sc); err != nil {
		e.Err = err
		return err
	}

	creating := e.mode == ModeCreating
	prev := e.mode
	e.mode = ModeSubmitting

	if creating {
		stored, err := e.saver.CreateScene(ctx, sc)
		if err != nil {
			e.mode = prev
			e.Err = err
			return err
		}
		e.store.PutScene(stored)
	} else {
		if err := e.saver.UpdateScene(ctx, sc); err != nil {
			e.mode = prev
			e.Err = err
			return err
		}
		// Editing clears the active flag; the promised state may be stale.
		sc.Active = false
		e.store.PutScene(sc)
	}

	e.Close()
	return nil
}
