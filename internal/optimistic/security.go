package optimistic

import (
	"context"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// securityEntityID sequences arm/disarm commands against a single pseudo
// entity so a late arm completion cannot clobber a newer disarm.
const securityEntityID = "security-system"

// Arm arms the security system.
func (c *Controller) Arm(ctx context.Context) {
	c.setSecurity(ctx, domain.SecurityArmed)
}

// Disarm disarms the security system.
func (c *Controller) Disarm(ctx context.Context) {
	c.setSecurity(ctx, domain.SecurityDisarmed)
}

func (c *Controller) setSecurity(ctx context.Context, status domain.SecurityStatus) {
	if c.store.Security() == status {
		return
	}

	op := "disarm security system"
	if status == domain.SecurityArmed {
		op = "arm security system"
	}
	c.run(ctx, command{
		op:       op,
		entityID: securityEntityID,
		apply: func() (store.Undo, bool) {
			return c.store.SwapSecurity(status), true
		},
		send: func(ctx context.Context) error {
			if status == domain.SecurityArmed {
				return c.gw.Arm(ctx)
			}
			return c.gw.Disarm(ctx)
		},
	})
}
