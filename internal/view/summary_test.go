package view

import (
	"testing"

	"github.com/sideduran/homeboard/internal/domain"
)

func TestDayPhrase(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want string
	}{
		{"all seven", []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, "Every day"},
		{"all seven shuffled", []string{"Sun", "Wed", "Mon", "Fri", "Tue", "Sat", "Thu"}, "Every day"},
		{"weekdays", []string{"Mon", "Tue", "Wed", "Thu", "Fri"}, "Every weekday"},
		{"weekend", []string{"Sat", "Sun"}, "Every weekend"},
		{"weekend reversed", []string{"Sun", "Sat"}, "Every weekend"},
		{"single day", []string{"Mon"}, "On Mon"},
		{"input order preserved", []string{"Fri", "Mon"}, "On Fri, Mon"},
		{"six days", []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, "On Mon, Tue, Wed, Thu, Fri, Sat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayPhrase(tt.days); got != tt.want {
				t.Errorf("DayPhrase(%v) = %q, want %q", tt.days, got, tt.want)
			}
		})
	}
}

func TestAutomationSummaryEveryDayTurnOff(t *testing.T) {
	got := AutomationSummary(
		"23:00",
		[]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		domain.OpTurnOff, nil,
		[]string{"Living Room Ceiling Light"},
	)
	want := "Every day at 23:00, turn OFF Living Room Ceiling Light."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAutomationSummarySetTemperature(t *testing.T) {
	v := 22.0
	got := AutomationSummary(
		"07:00",
		[]string{"Mon", "Tue", "Wed", "Thu", "Fri"},
		domain.OpSetTemperature, &v,
		[]string{"Living Room Thermostat"},
	)
	want := "Every weekday at 07:00, set temperature to 22°C Living Room Thermostat."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestActionPhrase(t *testing.T) {
	v := 80.0
	tests := []struct {
		op    domain.Op
		value *float64
		want  string
	}{
		{domain.OpTurnOn, nil, "turn ON"},
		{domain.OpTurnOff, nil, "turn OFF"},
		{domain.OpSetBrightness, &v, "set brightness to 80%"},
		{domain.OpLock, nil, "lock"},
		{domain.OpUnlock, nil, "unlock"},
		{domain.OpStartRecording, nil, "start recording"},
	}
	for _, tt := range tests {
		if got := ActionPhrase(tt.op, tt.value); got != tt.want {
			t.Errorf("ActionPhrase(%q) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestSummarizeAutomationMultiAction(t *testing.T) {
	a := domain.Automation{
		Name: "Evening",
		Time: "21:00",
		Days: []string{"Sat", "Sun"},
		Actions: []domain.Action{
			{Kind: domain.KindDeviceControl, TargetID: "light-1", Op: domain.OpTurnOff},
			{Kind: domain.KindScene, TargetID: "scene-evening"},
			{Kind: domain.KindDeviceControl, TargetID: "lock-1", Op: domain.OpLock},
		},
	}
	names := map[string]string{"light-1": "Hall Light"}

	got := SummarizeAutomation(a, func(id string) string { return names[id] })
	want := "Every weekend at 21:00, turn OFF Hall Light. (+2 more)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
