// Package sim is an in-memory stand-in for the external smart-home backend.
// It serves the full REST contract the gateway client consumes — device
// CRUD, capability actions, rooms, scenes (including activation), automations,
// security and the activity log — with the behaviors the real backend
// exhibits: scene activation applies actions to devices, manually controlling
// a device deactivates scenes that reference it, and every mutation appends
// an activity entry.
//
// It backs cmd/homeboard-sim for development against no real hardware, and
// httptest-based integration tests for the gateway and sync controller.
package sim
