package optimistic

import (
	"context"

	"github.com/google/uuid"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// SaveAutomation creates or updates an automation.
func (c *Controller) SaveAutomation(ctx context.Context, a domain.Automation) string {
	_, exists := c.store.Automation(a.ID)
	if !exists && a.ID == "" {
		a.ID = uuid.NewString()
	}
	id := a.ID

	op := "create automation"
	if exists {
		op = "update automation"
	}
	c.run(ctx, command{
		op:       op,
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.PutAutomation(a), true
		},
		send: func(ctx context.Context) error {
			if exists {
				return c.gw.UpdateAutomation(ctx, a)
			}
			stored, err := c.gw.CreateAutomation(ctx, a)
			if err != nil {
				return err
			}
			a = stored
			return nil
		},
		confirm: func() {
			if !exists {
				c.store.PutAutomation(a)
			}
		},
	})
	return id
}

// DeleteAutomation removes an automation.
func (c *Controller) DeleteAutomation(ctx context.Context, id string) {
	c.run(ctx, command{
		op:       "delete automation",
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.DeleteAutomation(id)
		},
		send: func(ctx context.Context) error {
			return c.gw.DeleteAutomation(ctx, id)
		},
	})
}

// SetAutomationEnabled flips an automation's active flag. The gateway has no
// dedicated enable endpoint; the full record is re-sent.
func (c *Controller) SetAutomationEnabled(ctx context.Context, id string, enabled bool) {
	a, ok := c.store.Automation(id)
	if !ok || a.Active == enabled {
		return
	}
	a.Active = enabled

	op := "disable automation"
	if enabled {
		op = "enable automation"
	}
	c.run(ctx, command{
		op:       op,
		entityID: id,
		apply: func() (store.Undo, bool) {
			return c.store.MutateAutomation(id, func(a *domain.Automation) { a.Active = enabled })
		},
		send: func(ctx context.Context) error {
			return c.gw.UpdateAutomation(ctx, a)
		},
	})
}
