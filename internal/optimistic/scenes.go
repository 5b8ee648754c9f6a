package optimistic

import (
	"context"

	"github.com/google/uuid"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// SaveScene creates or updates a scene depending on whether the store
// already holds its id. Editing clears the active flag: the promised device
// state may no longer hold.
func (c *Controller) SaveScene(ctx context.Context, sc domain.Scene) string {
	_, exists := c.store.Scene(sc.ID)
	if !exists && sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	sc.Active = false
	id := sc.ID

	op := "create scene"
	if exists {
		op = "update scene"
	}
	c.run(ctx, command{
		op:       op,
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.PutScene(sc), true
		},
		send: func(ctx context.Context) error {
			if exists {
				return c.gw.UpdateScene(ctx, sc)
			}
			stored, err := c.gw.CreateScene(ctx, sc)
			if err != nil {
				return err
			}
			sc = stored
			return nil
		},
		confirm: func() {
			if !exists {
				c.store.PutScene(sc)
			}
		},
	})
	return id
}

// DeleteScene removes a scene.
func (c *Controller) DeleteScene(ctx context.Context, id string) {
	c.run(ctx, command{
		op:       "delete scene",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.DeleteScene(id)
		},
		send: func(ctx context.Context) error {
			return c.gw.DeleteScene(ctx, id)
		},
	})
}

// ActivateScene applies a scene's actions to local device state and marks
// it active. Activating an already-active scene is a local no-op: the user
// gets a notice and no request is sent.
func (c *Controller) ActivateScene(ctx context.Context, id string) {
	sc, ok := c.store.Scene(id)
	if !ok {
		return
	}
	if sc.Active {
		c.notifier.Notify(Notification{
			Level:    LevelInfo,
			Message:  sc.Name + " is already active",
			EntityID: id,
		})
		return
	}

	c.run(ctx, command{
		op:       "activate scene",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.applySceneActivation(sc)
		},
		send: func(ctx context.Context) error {
			return c.gw.ActivateScene(ctx, id)
		},
	})
}

// applySceneActivation mutates every targeted device and flips the scene
// active, returning a composite undo covering all of it. Device undos are
// guarded per device: a rollback restores only the devices no newer command
// has claimed since the activation.
func (c *Controller) applySceneActivation(sc domain.Scene) (store.Undo, bool) {
	var undos []store.Undo

	for _, a := range sc.Actions {
		if a.Kind != domain.KindDeviceControl {
			continue
		}
		action := a
		undo, ok := c.store.MutateDevice(action.TargetID, func(d *domain.Device) {
			applyActionToDevice(d, action)
		})
		if ok {
			undos = append(undos, c.guardedUndo(action.TargetID, undo))
		}
	}

	undoScene, ok := c.store.MutateScene(sc.ID, func(s *domain.Scene) { s.Active = true })
	if !ok {
		composeUndo(undos)()
		return nil, false
	}
	undos = append(undos, undoScene)

	return composeUndo(undos), true
}

// applyActionToDevice projects one action onto a device's state.
func applyActionToDevice(d *domain.Device, a domain.Action) {
	switch a.Op {
	case domain.OpTurnOn:
		d.On = true
	case domain.OpTurnOff:
		d.On = false
	case domain.OpLock:
		d.Locked = true
	case domain.OpUnlock:
		d.Locked = false
	case domain.OpSetTemperature:
		if a.Value != nil {
			d.TargetTemperature = *a.Value
		}
	case domain.OpStartRecording:
		d.Recording = true
		d.On = true
	case domain.OpStopRecording:
		d.Recording = false
	}
}
