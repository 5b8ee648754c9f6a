package optimistic

import (
	"context"

	"github.com/google/uuid"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// ToggleLight flips a light's on state. The resulting gateway call matches
// the state after the flip.
func (c *Controller) ToggleLight(ctx context.Context, id string) {
	d, ok := c.store.Device(id)
	if !ok || d.Type != domain.TypeLight {
		return
	}
	turningOn := !d.On

	c.run(ctx, command{
		op:       lightOpName(turningOn),
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.applyDeviceChange(id, func(d *domain.Device) { d.On = turningOn })
		},
		send: func(ctx context.Context) error {
			if turningOn {
				return c.gw.TurnOnLight(ctx, id)
			}
			return c.gw.TurnOffLight(ctx, id)
		},
	})
}

func lightOpName(turningOn bool) string {
	if turningOn {
		return "turn on light"
	}
	return "turn off light"
}

// ToggleLock flips a lock between locked and unlocked.
func (c *Controller) ToggleLock(ctx context.Context, id string) {
	d, ok := c.store.Device(id)
	if !ok || d.Type != domain.TypeLock {
		return
	}
	locking := !d.Locked

	op := "unlock door"
	if locking {
		op = "lock door"
	}
	c.run(ctx, command{
		op:       op,
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.applyDeviceChange(id, func(d *domain.Device) { d.Locked = locking })
		},
		send: func(ctx context.Context) error {
			if locking {
				return c.gw.LockDoor(ctx, id)
			}
			return c.gw.UnlockDoor(ctx, id)
		},
	})
}

// ToggleRecording starts or stops a camera recording. Starting also powers
// the camera on, mirroring the backend.
func (c *Controller) ToggleRecording(ctx context.Context, id string) {
	d, ok := c.store.Device(id)
	if !ok || d.Type != domain.TypeCamera {
		return
	}
	starting := !d.Recording

	op := "stop recording"
	if starting {
		op = "start recording"
	}
	c.run(ctx, command{
		op:       op,
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.applyDeviceChange(id, func(d *domain.Device) {
				d.Recording = starting
				if starting {
					d.On = true
				}
			})
		},
		send: func(ctx context.Context) error {
			if starting {
				return c.gw.StartRecording(ctx, id)
			}
			return c.gw.StopRecording(ctx, id)
		},
	})
}

// SetTargetTemperature sets a thermostat's target.
func (c *Controller) SetTargetTemperature(ctx context.Context, id string, target float64) {
	d, ok := c.store.Device(id)
	if !ok || d.Type != domain.TypeThermostat {
		return
	}

	c.run(ctx, command{
		op:       "set target temperature",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.applyDeviceChange(id, func(d *domain.Device) { d.TargetTemperature = target })
		},
		send: func(ctx context.Context) error {
			return c.gw.SetTargetHeat(ctx, id, target)
		},
	})
}

// applyDeviceChange mutates a device and deactivates every active scene
// referencing it: manual control breaks a scene's promised state, locally
// just as on the backend. Each deactivated scene gets its own guarded undo,
// so the rollback touches exactly the scenes this change flipped and skips
// any a newer command has claimed since.
func (c *Controller) applyDeviceChange(id string, fn func(*domain.Device)) (store.Undo, bool) {
	undoDevice, ok := c.store.MutateDevice(id, fn)
	if !ok {
		return nil, false
	}
	undos := []store.Undo{undoDevice}
	for _, sc := range c.store.Scenes() {
		if !sc.Active || !sc.References(id) {
			continue
		}
		undoScene, ok := c.store.MutateScene(sc.ID, func(s *domain.Scene) { s.Active = false })
		if ok {
			undos = append(undos, c.guardedUndo(sc.ID, undoScene))
		}
	}
	return composeUndo(undos), true
}

// AddDevice registers a new device. An id is assigned client-side so the
// optimistic row and the stored row agree; the server copy (with defaults
// applied) replaces the local one on confirmation.
func (c *Controller) AddDevice(ctx context.Context, d domain.Device) string {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	id := d.ID

	c.run(ctx, command{
		op:       "add device",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.PutDevice(d), true
		},
		send: func(ctx context.Context) error {
			stored, err := c.gw.CreateDevice(ctx, d)
			if err != nil {
				return err
			}
			d = stored
			return nil
		},
		confirm: func() {
			c.store.PutDevice(d)
		},
	})
	return id
}

// UpdateDevice replaces a device's stored representation (rename, re-room).
func (c *Controller) UpdateDevice(ctx context.Context, d domain.Device) {
	if _, ok := c.store.Device(d.ID); !ok {
		return
	}
	c.run(ctx, command{
		op:       "update device",
		entityID: d.ID,
		apply: func() (store.Undo, bool) {
			return c.store.PutDevice(d), true
		},
		send: func(ctx context.Context) error {
			return c.gw.UpdateDevice(ctx, d)
		},
	})
}

// RemoveDevice deletes a device.
func (c *Controller) RemoveDevice(ctx context.Context, id string) {
	c.run(ctx, command{
		op:       "remove device",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.DeleteDevice(id)
		},
		send: func(ctx context.Context) error {
			return c.gw.DeleteDevice(ctx, id)
		},
	})
}
