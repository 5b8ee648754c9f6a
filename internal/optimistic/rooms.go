package optimistic

import (
	"context"

	"github.com/google/uuid"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// CreateRoom adds a room.
func (c *Controller) CreateRoom(ctx context.Context, r domain.Room) string {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	id := r.ID

	c.run(ctx, command{
		op:       "create room",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.PutRoom(r), true
		},
		send: func(ctx context.Context) error {
			stored, err := c.gw.CreateRoom(ctx, r)
			if err != nil {
				return err
			}
			r = stored
			return nil
		},
		confirm: func() {
			c.store.PutRoom(r)
		},
	})
	return id
}

// AssignDeviceToRoom moves a device into a room, maintaining both rooms'
// membership lists locally.
func (c *Controller) AssignDeviceToRoom(ctx context.Context, roomID, deviceID string) {
	d, okDevice := c.store.Device(deviceID)
	room, okRoom := c.store.Room(roomID)
	if !okDevice || !okRoom {
		return
	}
	prevRoomID := d.RoomID

	c.run(ctx, command{
		op:       "assign device to room",
		entityID: deviceID,
		apply: func() (store.Undo, bool) {
			undoDevice, ok := c.store.MutateDevice(deviceID, func(d *domain.Device) { d.RoomID = roomID })
			if !ok {
				return nil, false
			}
			var undos []store.Undo
			undos = append(undos, undoDevice)

			if prev, ok := c.store.Room(prevRoomID); ok && prevRoomID != roomID {
				prev.DeviceIDs = removeID(prev.DeviceIDs, deviceID)
				undos = append(undos, c.guardedUndo(prev.ID, c.store.PutRoom(prev)))
			}
			room.DeviceIDs = append(removeID(room.DeviceIDs, deviceID), deviceID)
			undos = append(undos, c.guardedUndo(room.ID, c.store.PutRoom(room)))

			return composeUndo(undos), true
		},
		send: func(ctx context.Context) error {
			return c.gw.AssignDevice(ctx, roomID, deviceID)
		},
	})
}

func removeID(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
