package sim

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sideduran/homeboard/internal/domain"
)

// State is the simulator's in-memory world. One State serves one simulated
// home; all methods are safe for concurrent use by the HTTP handlers.
type State struct {
	mu          sync.Mutex
	devices     map[string]*domain.Device
	rooms       map[string]*domain.Room
	scenes      map[string]*domain.Scene
	automations map[string]*domain.Automation
	activities  []domain.ActivityLog
	security    domain.SecurityStatus

	// now is injectable so tests get stable activity timestamps.
	now func() time.Time
}

// NewState creates an empty simulated home.
func NewState() *State {
	return &State{
		devices:     make(map[string]*domain.Device),
		rooms:       make(map[string]*domain.Room),
		scenes:      make(map[string]*domain.Scene),
		automations: make(map[string]*domain.Automation),
		security:    domain.SecurityDisarmed,
		now:         time.Now,
	}
}

// Seed populates the demo home: three rooms, a spread of device types and
// one scene, roughly the fixture set the product ships for development.
func (st *State) Seed() {
	st.mu.Lock()
	defer st.mu.Unlock()

	rooms := []*domain.Room{
		{ID: "room-living", Name: "Living Room", Description: "Main living area"},
		{ID: "room-bedroom", Name: "Master Bedroom", Description: "Main bedroom"},
		{ID: "room-kitchen", Name: "Kitchen", Description: "Kitchen area"},
	}
	for _, r := range rooms {
		st.rooms[r.ID] = r
	}

	devices := []*domain.Device{
		{ID: "light-1", Name: "Living Room Light", Type: domain.TypeLight, RoomID: "room-living", Online: true},
		{ID: "light-2", Name: "Bedroom Light", Type: domain.TypeLight, RoomID: "room-bedroom", Online: true},
		{ID: "thermostat-1", Name: "Living Room Thermostat", Type: domain.TypeThermostat, RoomID: "room-living", Online: true, CurrentTemperature: 23, TargetTemperature: 22},
		{ID: "thermostat-2", Name: "Bedroom Thermostat", Type: domain.TypeThermostat, RoomID: "room-bedroom", Online: true, CurrentTemperature: 21, TargetTemperature: 21},
		{ID: "lock-1", Name: "Front Door Lock", Type: domain.TypeLock, RoomID: "room-living", Online: true, Locked: true},
		{ID: "lock-2", Name: "Bedroom Door Lock", Type: domain.TypeLock, RoomID: "room-bedroom", Online: true, Locked: true},
		{ID: "camera-1", Name: "Living Room Camera", Type: domain.TypeCamera, RoomID: "room-living", Online: true, On: true},
		{ID: "camera-2", Name: "Kitchen Camera", Type: domain.TypeCamera, RoomID: "room-kitchen", Online: true, On: true},
	}
	for _, d := range devices {
		st.devices[d.ID] = d
		if room, ok := st.rooms[d.RoomID]; ok {
			room.DeviceIDs = append(room.DeviceIDs, d.ID)
		}
	}

	st.scenes["scene-evening"] = &domain.Scene{
		ID:   "scene-evening",
		Name: "Evening mode",
		Actions: []domain.Action{
			{Kind: domain.KindDeviceControl, TargetID: "light-1", Op: domain.OpTurnOn},
			{Kind: domain.KindDeviceControl, TargetID: "thermostat-1", Op: domain.OpSetTemperature, Value: float64Ptr(21)},
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }

// logActivity appends an audit entry, resolving the device name and
// suffixing the room name when known. Must be called with st.mu held.
func (st *State) logActivity(deviceID, action, details string, icon domain.IconType) {
	name := "Unknown Device"
	if deviceID == securitySystemID {
		name = "Security System"
	} else if d, ok := st.devices[deviceID]; ok {
		name = d.Name
		if room, ok := st.rooms[d.RoomID]; ok {
			details += " in " + room.Name
		}
	} else if sc, ok := st.scenes[deviceID]; ok {
		name = sc.Name
		details += ": " + sc.Name
	}

	st.activities = append(st.activities, domain.ActivityLog{
		ID:         uuid.NewString(),
		Timestamp:  st.now().Format("15:04"),
		DeviceName: name,
		Action:     action,
		Details:    details,
		IconType:   icon,
	})
}

// securitySystemID is the pseudo-device id used for arm/disarm audit entries.
const securitySystemID = "security-system"

// deactivateScenesFor clears the active flag of every scene referencing the
// device: manual control breaks the scene's promised state. Must be called
// with st.mu held.
func (st *State) deactivateScenesFor(deviceID string) {
	for _, sc := range st.scenes {
		if sc.Active && sc.References(deviceID) {
			sc.Active = false
		}
	}
}

// applyAction executes one scene/automation action against device state.
// Must be called with st.mu held.
func (st *State) applyAction(a domain.Action) {
	if a.Kind != domain.KindDeviceControl {
		return
	}
	d, ok := st.devices[a.TargetID]
	if !ok {
		return
	}
	switch a.Op {
	case domain.OpTurnOn:
		d.On = true
	case domain.OpTurnOff:
		d.On = false
	case domain.OpLock:
		d.Locked = true
	case domain.OpUnlock:
		d.Locked = false
	case domain.OpSetTemperature:
		if a.Value != nil {
			d.TargetTemperature = *a.Value
		}
	case domain.OpStartRecording:
		d.Recording = true
		d.On = true
	case domain.OpStopRecording:
		d.Recording = false
	}
}

// defaultsForType applies per-type creation defaults, mirroring the device
// registration behavior of the real backend.
func defaultsForType(d *domain.Device) {
	d.Online = true
	switch d.Type {
	case domain.TypeThermostat:
		if d.CurrentTemperature == 0 {
			d.CurrentTemperature = 21
		}
		if d.TargetTemperature == 0 {
			d.TargetTemperature = 21
		}
	case domain.TypeCamera:
		d.On = true
	}
}
