package domain

import (
	"fmt"
	"regexp"
)

// Validation constants.
const (
	maxNameLength = 100
)

// timeRegex matches 24-hour HH:MM trigger times.
var timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateName checks an entity name for presence and length.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// ValidateTime checks a trigger time for the 24-hour HH:MM format.
func ValidateTime(t string) error {
	if !timeRegex.MatchString(t) {
		return fmt.Errorf("%w: %q is not HH:MM", ErrInvalidTime, t)
	}
	return nil
}

// ValidateDevice checks a device before it is sent to the gateway.
func ValidateDevice(d *Device) error {
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if !ValidDeviceType(d.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidDeviceType, d.Type)
	}
	return nil
}
