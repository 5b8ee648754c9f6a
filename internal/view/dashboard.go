package view

import (
	"fmt"
	"math"

	"github.com/sideduran/homeboard/internal/domain"
)

// DashboardStats aggregates the overview cards on the dashboard.
type DashboardStats struct {
	TotalDevices  int
	OnlineDevices int

	LightsOn    int
	TotalLights int

	// AvgTemperature is the rounded mean of current thermostat temperatures.
	// It is 0 when ThermostatCount is 0; use AvgTemperatureDisplay for the
	// user-facing sentinel.
	AvgTemperature  int
	ThermostatCount int

	Security domain.SecurityStatus
}

// ComputeDashboardStats derives the overview statistics from a device
// snapshot. A home with no thermostats yields AvgTemperature 0, never a
// division error.
func ComputeDashboardStats(devices []domain.Device, security domain.SecurityStatus) DashboardStats {
	stats := DashboardStats{Security: security}

	var tempSum float64
	for _, d := range devices {
		stats.TotalDevices++
		if d.Online {
			stats.OnlineDevices++
		}
		switch d.Type {
		case domain.TypeLight:
			stats.TotalLights++
			if d.On {
				stats.LightsOn++
			}
		case domain.TypeThermostat:
			stats.ThermostatCount++
			tempSum += d.CurrentTemperature
		}
	}

	if stats.ThermostatCount > 0 {
		stats.AvgTemperature = int(math.Round(tempSum / float64(stats.ThermostatCount)))
	}
	return stats
}

// AvgTemperatureDisplay formats the average temperature card value,
// returning "--" when the home has no thermostats.
func (s DashboardStats) AvgTemperatureDisplay() string {
	if s.ThermostatCount == 0 {
		return "--"
	}
	return fmt.Sprintf("%d°C", s.AvgTemperature)
}

// Greeting returns the time-of-day greeting for the given hour (0-23).
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// dashboardActivityLimit is how many activity entries the dashboard shows.
const dashboardActivityLimit = 5

// RecentActivities returns the newest entries first, truncated to limit.
// The gateway returns entries in append (chronological) order. A limit of 0
// applies the dashboard default.
func RecentActivities(logs []domain.ActivityLog, limit int) []domain.ActivityLog {
	if limit <= 0 {
		limit = dashboardActivityLimit
	}
	out := make([]domain.ActivityLog, 0, limit)
	for i := len(logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, logs[i])
	}
	return out
}
