package optimistic

import (
	"context"

	"github.com/sideduran/homeboard/internal/store"
)

// command is one optimistic mutation: a synchronous local apply, a
// background gateway call, and an optional confirm step run on success.
type command struct {
	op       string // human-readable, used in failure notifications
	entityID string
	apply    func() (store.Undo, bool) // false means the target is gone; no-op
	send     func(ctx context.Context) error
	confirm  func() // may be nil
}

// composeUndo folds a list of undos into one that unwinds in reverse order.
func composeUndo(undos []store.Undo) store.Undo {
	return func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}
}

// run executes a command. The local apply happens before run returns; the
// gateway call is dispatched on a goroutine tracked by the wait group.
func (c *Controller) run(ctx context.Context, cmd command) {
	undo, ok := cmd.apply()
	if !ok {
		return
	}
	if cmd.entityID != "" {
		c.markHighlight(cmd.entityID)
	}
	seq := c.nextSeq(cmd.entityID)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := cmd.send(ctx)
		c.complete(cmd, seq, undo, err)
	}()
}

// complete reconciles one finished dispatch. A fresh failure rolls the local
// change back; a stale one (a newer command for the same entity has been
// issued since) leaves the store alone because the newer command owns the
// entity's state now. Either way the user hears about the failure once.
func (c *Controller) complete(cmd command, seq uint64, undo store.Undo, err error) {
	if err == nil {
		if c.isLatest(cmd.entityID, seq) && cmd.confirm != nil {
			cmd.confirm()
		}
		return
	}

	c.log.Warn("dispatch failed", "op", cmd.op, "entity", cmd.entityID, "error", err)
	message := "Could not " + cmd.op
	if c.isLatest(cmd.entityID, seq) && undo != nil {
		undo()
		message += "; change reverted"
	}
	c.notifier.Notify(Notification{
		Level:    LevelError,
		Message:  message,
		EntityID: cmd.entityID,
	})
}
