package editor

import "github.com/sideduran/homeboard/internal/domain"

// Mode is an editor's lifecycle phase.
type Mode int

const (
	ModeClosed Mode = iota
	ModeCreating
	ModeEditing
	ModeSubmitting
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	case ModeSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// toggleDeviceAction implements the form behavior shared by both editors:
// selecting a device adds an action with its type-appropriate default
// operation, selecting it again removes the action.
func toggleDeviceAction(actions []domain.Action, d domain.Device) []domain.Action {
	for i, a := range actions {
		if a.Kind == domain.KindDeviceControl && a.TargetID == d.ID {
			return append(actions[:i], actions[i+1:]...)
		}
	}
	op, value := domain.DefaultOp(d.Type)
	return append(actions, domain.Action{
		Kind:     domain.KindDeviceControl,
		TargetID: d.ID,
		Op:       op,
		Value:    value,
	})
}

func setActionOp(actions []domain.Action, targetID string, op domain.Op, value *float64) {
	for i := range actions {
		if actions[i].TargetID == targetID {
			actions[i].Op = op
			actions[i].Value = value
			return
		}
	}
}
