// Package domain defines the canonical entity model for the homeboard
// dashboard core: devices, rooms, scenes, automations, activity log entries
// and the site-wide security status.
//
// The backend has shipped two generations of the scene and automation
// schemas (a flat device-id list vs. an ordered action list). This package
// owns that migration: decoding accepts both shapes and normalizes to the
// single tagged-union Action representation, encoding always emits the
// canonical shape. Application code never sees the legacy fields.
package domain
