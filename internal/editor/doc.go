// Package editor holds the draft state machines behind the scene and
// automation forms. An editor hydrates a full draft from the store, accepts
// field edits and action toggles, validates before submission, and commits
// the saved record back to the store only when the gateway accepts it. A
// rejected save leaves the editor open with the draft intact.
//
// Editors model a single form on a single screen; they are not safe for
// concurrent use.
package editor
