package domain

import "errors"

// Validation errors for the domain package.
//
// These can be checked with errors.Is():
//
//	if errors.Is(err, domain.ErrInvalidTime) {
//	    // reject the form submit
//	}
var (
	// ErrInvalidName is returned when an entity name is empty or too long.
	ErrInvalidName = errors.New("domain: invalid name")

	// ErrInvalidDeviceType is returned when a device type is not recognised.
	ErrInvalidDeviceType = errors.New("domain: invalid device type")

	// ErrInvalidTime is returned when a trigger time is not a 24-hour HH:MM string.
	ErrInvalidTime = errors.New("domain: invalid time")

	// ErrNoDays is returned when an automation selects no weekdays.
	ErrNoDays = errors.New("domain: no days selected")

	// ErrInvalidDay is returned when a weekday name is not recognised.
	ErrInvalidDay = errors.New("domain: invalid day")

	// ErrNoActions is returned when a scene or automation has no actions.
	ErrNoActions = errors.New("domain: no actions")

	// ErrInvalidAction is returned when an action fails validation.
	ErrInvalidAction = errors.New("domain: invalid action")

	// ErrInvalidOp is returned when an operation name is not recognised.
	ErrInvalidOp = errors.New("domain: invalid operation")
)
