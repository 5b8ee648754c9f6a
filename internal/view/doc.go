// Package view computes derived, presentation-ready values from domain
// snapshots: dashboard statistics, per-room rollups, natural-language
// automation summaries and the activity feed.
//
// Everything here is a pure function over its inputs. Nothing mutates state,
// touches the network or reads the clock (the greeting takes the hour as a
// parameter), which keeps the package trivially testable.
package view
