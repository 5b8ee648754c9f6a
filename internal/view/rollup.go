package view

import (
	"fmt"
	"math"
	"sort"

	"github.com/sideduran/homeboard/internal/domain"
)

// NoTemperature is the rollup temperature shown for rooms without a
// thermostat. Every room card uses this one sentinel.
const NoTemperature = "-"

// RoomRollup aggregates one room card: device counts, whether any light is
// on, and the mean thermostat temperature.
type RoomRollup struct {
	RoomID   string
	RoomName string

	Devices       int
	ActiveDevices int // online && on
	LightOn       bool

	// Temperature is "{n}°C" or NoTemperature when the room has no thermostat.
	Temperature string
}

// ComputeRoomRollup derives the rollup for one room from the full device
// snapshot. A room with no devices yields zero counts, LightOn false and the
// temperature sentinel.
func ComputeRoomRollup(room domain.Room, devices []domain.Device) RoomRollup {
	return rollup(room.ID, room.Name, devices, func(d domain.Device) bool {
		return d.RoomID == room.ID
	})
}

// RollupAll computes rollups for every room, sorted by room name. Devices
// whose RoomID is empty or does not resolve to a known room are grouped
// under the "Unknown Room" sentinel, appended last.
func RollupAll(rooms []domain.Room, devices []domain.Device) []RoomRollup {
	known := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		known[r.ID] = struct{}{}
	}

	out := make([]RoomRollup, 0, len(rooms)+1)
	for _, r := range rooms {
		out = append(out, ComputeRoomRollup(r, devices))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomName < out[j].RoomName })

	orphaned := func(d domain.Device) bool {
		if d.RoomID == "" {
			return true
		}
		_, ok := known[d.RoomID]
		return !ok
	}
	for _, d := range devices {
		if orphaned(d) {
			out = append(out, rollup("", domain.UnknownRoomName, devices, orphaned))
			break
		}
	}
	return out
}

func rollup(roomID, roomName string, devices []domain.Device, member func(domain.Device) bool) RoomRollup {
	r := RoomRollup{RoomID: roomID, RoomName: roomName, Temperature: NoTemperature}

	var tempSum float64
	var thermostats int
	for _, d := range devices {
		if !member(d) {
			continue
		}
		r.Devices++
		if d.Online && d.On {
			r.ActiveDevices++
		}
		if d.Type == domain.TypeLight && d.On {
			r.LightOn = true
		}
		if d.Type == domain.TypeThermostat {
			thermostats++
			tempSum += d.CurrentTemperature
		}
	}

	if thermostats > 0 {
		r.Temperature = fmt.Sprintf("%d°C", int(math.Round(tempSum/float64(thermostats))))
	}
	return r
}
