// Package store holds the process-wide normalized entity tables: devices,
// rooms, scenes, automations, the activity feed and the security status.
//
// Every screen reads the same tables, so a mutation made anywhere is
// visible everywhere without re-fetch choreography. Entities are deep-copied
// on the way in and out; callers can never alias internal state.
//
// Mutating primitives return an undo closure capturing the pre-mutation
// snapshot. The optimistic sync controller applies a mutation, dispatches
// the matching gateway call, and invokes the undo on failure.
//
// Change notification is push-based: Subscribe returns a buffered channel of
// events. Delivery is best-effort; a subscriber that falls behind misses
// events rather than blocking writers, and is expected to re-read the
// tables it cares about.
package store
