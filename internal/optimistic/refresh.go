package optimistic

import (
	"context"
	"errors"
)

// Refresh methods pull authoritative state from the gateway into the store.
// On failure the store keeps whatever it last held (typically the restored
// snapshot or an earlier fetch) and the user is told the load failed.

func (c *Controller) RefreshDevices(ctx context.Context) error {
	devices, err := c.gw.Devices(ctx)
	if err != nil {
		return c.refreshFailed("devices", err)
	}
	c.store.ReplaceDevices(devices)
	return nil
}

func (c *Controller) RefreshRooms(ctx context.Context) error {
	rooms, err := c.gw.Rooms(ctx)
	if err != nil {
		return c.refreshFailed("rooms", err)
	}
	c.store.ReplaceRooms(rooms)
	return nil
}

func (c *Controller) RefreshScenes(ctx context.Context) error {
	scenes, err := c.gw.Scenes(ctx)
	if err != nil {
		return c.refreshFailed("scenes", err)
	}
	c.store.ReplaceScenes(scenes)
	return nil
}

func (c *Controller) RefreshAutomations(ctx context.Context) error {
	automations, err := c.gw.Automations(ctx)
	if err != nil {
		return c.refreshFailed("automations", err)
	}
	c.store.ReplaceAutomations(automations)
	return nil
}

func (c *Controller) RefreshActivities(ctx context.Context) error {
	activities, err := c.gw.Activities(ctx)
	if err != nil {
		return c.refreshFailed("activity feed", err)
	}
	c.store.ReplaceActivities(activities)
	return nil
}

func (c *Controller) RefreshSecurity(ctx context.Context) error {
	status, err := c.gw.SecurityStatus(ctx)
	if err != nil {
		return c.refreshFailed("security status", err)
	}
	c.store.SetSecurity(status)
	return nil
}

// RefreshAll reloads every collection, continuing past individual failures
// so one broken endpoint does not blank the rest of the dashboard.
func (c *Controller) RefreshAll(ctx context.Context) error {
	return errors.Join(
		c.RefreshRooms(ctx),
		c.RefreshDevices(ctx),
		c.RefreshScenes(ctx),
		c.RefreshAutomations(ctx),
		c.RefreshActivities(ctx),
		c.RefreshSecurity(ctx),
	)
}

func (c *Controller) refreshFailed(what string, err error) error {
	c.log.Warn("refresh failed", "collection", what, "error", err)
	c.notifier.Notify(Notification{
		Level:   LevelError,
		Message: "Failed to load " + what + "; showing last known data",
	})
	return err
}
