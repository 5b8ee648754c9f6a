package mqtt

import (
	"fmt"
	"strings"
)

// defaultTopicPrefix is used when the config leaves the prefix empty.
const defaultTopicPrefix = "homeboard"

// Topics builds the state-feed topic names under a configurable prefix.
// Using these helpers keeps topic naming consistent with the backend's
// publisher.
//
//	topics := mqtt.NewTopics("home")
//	topics.DeviceState("light-1") // "home/devices/light-1/state"
type Topics struct {
	prefix string
}

// NewTopics creates a topic builder. An empty prefix applies the default.
func NewTopics(prefix string) Topics {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = defaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// DeviceState returns the retained state topic for one device.
func (t Topics) DeviceState(deviceID string) string {
	return fmt.Sprintf("%s/devices/%s/state", t.prefix, deviceID)
}

// AllDeviceStates returns the wildcard pattern matching every device state.
func (t Topics) AllDeviceStates() string {
	return t.prefix + "/devices/+/state"
}

// DeviceIDFromTopic extracts the device id from a state topic, or "" when
// the topic does not match the device state shape.
func (t Topics) DeviceIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != t.prefix || parts[1] != "devices" || parts[3] != "state" {
		return ""
	}
	return parts[2]
}

// SceneState returns the retained state topic for one scene.
func (t Topics) SceneState(sceneID string) string {
	return fmt.Sprintf("%s/scenes/%s/state", t.prefix, sceneID)
}

// AllSceneStates returns the wildcard pattern matching every scene state.
func (t Topics) AllSceneStates() string {
	return t.prefix + "/scenes/+/state"
}

// SceneIDFromTopic extracts the scene id from a state topic, or "".
func (t Topics) SceneIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != t.prefix || parts[1] != "scenes" || parts[3] != "state" {
		return ""
	}
	return parts[2]
}

// SecurityStatus returns the retained topic carrying the arm state.
func (t Topics) SecurityStatus() string {
	return t.prefix + "/security/status"
}

// Activities returns the topic carrying appended activity log entries.
func (t Topics) Activities() string {
	return t.prefix + "/activities"
}
