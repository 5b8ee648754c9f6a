package domain

// DeviceType classifies a device by capability.
type DeviceType string

// Supported device types.
const (
	TypeLight      DeviceType = "light"
	TypeThermostat DeviceType = "thermostat"
	TypeLock       DeviceType = "lock"
	TypeCamera     DeviceType = "camera"
)

// AllDeviceTypes returns every supported device type.
func AllDeviceTypes() []DeviceType {
	return []DeviceType{TypeLight, TypeThermostat, TypeLock, TypeCamera}
}

// ValidDeviceType reports whether t is a recognised device type.
func ValidDeviceType(t DeviceType) bool {
	switch t {
	case TypeLight, TypeThermostat, TypeLock, TypeCamera:
		return true
	default:
		return false
	}
}

// SecurityStatus is the site-wide arm state. It is server-authoritative;
// the client flips it optimistically and reconciles on the response.
type SecurityStatus string

// Security states.
const (
	SecurityArmed    SecurityStatus = "armed"
	SecurityDisarmed SecurityStatus = "disarmed"
)

// UnknownRoomName is the sentinel room used for devices whose RoomID is
// empty or does not resolve to a known room.
const UnknownRoomName = "Unknown Room"

// Device is a controllable or monitorable entity. Only the fields relevant
// to Type carry meaning:
//
//	light       On
//	thermostat  CurrentTemperature, TargetTemperature
//	lock        Locked
//	camera      On, Recording
//
// Consumers must ignore the rest.
type Device struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Type   DeviceType `json:"type"`
	RoomID string     `json:"roomId,omitempty"`
	Online bool       `json:"online"`
	On     bool       `json:"on"`

	CurrentTemperature float64 `json:"currentTemperature,omitempty"`
	TargetTemperature  float64 `json:"targetTemperature,omitempty"`
	Locked             bool    `json:"locked,omitempty"`
	Recording          bool    `json:"recording,omitempty"`
}

// Clone returns an independent copy of the device.
func (d Device) Clone() Device {
	return d // value fields only
}

// Room groups devices by physical location. Device.RoomID is the canonical
// membership relation; DeviceIDs is carried for wire compatibility and is
// re-derivable by scanning devices.
type Room struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	DeviceIDs   []string `json:"deviceIds,omitempty"`
}

// Clone returns an independent copy of the room.
func (r Room) Clone() Room {
	cpy := r
	if r.DeviceIDs != nil {
		cpy.DeviceIDs = make([]string, len(r.DeviceIDs))
		copy(cpy.DeviceIDs, r.DeviceIDs)
	}
	return cpy
}

// IconType selects the icon a UI renders for an activity entry.
type IconType string

// Activity icon types.
const (
	IconLight      IconType = "LIGHT"
	IconLock       IconType = "LOCK"
	IconThermostat IconType = "THERMOSTAT"
	IconCamera     IconType = "CAMERA"
	IconSecurity   IconType = "SECURITY"
	IconScene      IconType = "SCENE"
)

// IconForDeviceType maps a device type to its activity icon. The mapping is
// total over AllDeviceTypes; unknown types fall back to IconSecurity.
func IconForDeviceType(t DeviceType) IconType {
	switch t {
	case TypeLight:
		return IconLight
	case TypeThermostat:
		return IconThermostat
	case TypeLock:
		return IconLock
	case TypeCamera:
		return IconCamera
	default:
		return IconSecurity
	}
}

// ActivityLog is a read-only, server-populated audit entry.
type ActivityLog struct {
	ID         string   `json:"id"`
	Timestamp  string   `json:"timestamp"`
	DeviceName string   `json:"deviceName"`
	Action     string   `json:"action"`
	Details    string   `json:"details"`
	IconType   IconType `json:"iconType"`
}
