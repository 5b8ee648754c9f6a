// Package optimistic coordinates local-first mutations: every user action
// updates the in-memory store immediately, dispatches the matching gateway
// call in the background, and rolls the store back (with a user-facing
// notification) if the backend rejects or never receives the change.
//
// Completions are sequenced per entity so a slow response for an older
// command can never clobber the effect of a newer one.
package optimistic
