package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/gateway"
	"github.com/sideduran/homeboard/internal/sim"
)

func newTestClient(t *testing.T) *gateway.Client {
	t.Helper()
	st := sim.NewState()
	st.Seed()
	srv := httptest.NewServer(sim.Handler(st))
	t.Cleanup(srv.Close)
	return gateway.New(srv.URL, 5*time.Second)
}

func TestDevicesRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	devices, err := c.Devices(ctx)
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	if len(devices) != 8 {
		t.Fatalf("len(devices) = %d, want 8", len(devices))
	}

	created, err := c.CreateDevice(ctx, domain.Device{
		Name:   "Porch Light",
		Type:   domain.TypeLight,
		RoomID: "room-living",
	})
	if err != nil {
		t.Fatalf("CreateDevice: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created device has no id")
	}

	created.Name = "Front Porch Light"
	if err := c.UpdateDevice(ctx, created); err != nil {
		t.Fatalf("UpdateDevice: %v", err)
	}
	if err := c.DeleteDevice(ctx, created.ID); err != nil {
		t.Fatalf("DeleteDevice: %v", err)
	}
}

func TestCapabilityActions(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	steps := []struct {
		name string
		call func() error
	}{
		{"turn on light", func() error { return c.TurnOnLight(ctx, "light-1") }},
		{"turn off light", func() error { return c.TurnOffLight(ctx, "light-1") }},
		{"unlock door", func() error { return c.UnlockDoor(ctx, "lock-1") }},
		{"lock door", func() error { return c.LockDoor(ctx, "lock-1") }},
		{"start recording", func() error { return c.StartRecording(ctx, "camera-1") }},
		{"stop recording", func() error { return c.StopRecording(ctx, "camera-1") }},
		{"set target heat", func() error { return c.SetTargetHeat(ctx, "thermostat-1", 24) }},
	}
	for _, step := range steps {
		if err := step.call(); err != nil {
			t.Errorf("%s: %v", step.name, err)
		}
	}

	devices, err := c.Devices(ctx)
	if err != nil {
		t.Fatalf("Devices: %v", err)
	}
	for _, d := range devices {
		if d.ID == "thermostat-1" && d.TargetTemperature != 24 {
			t.Errorf("thermostat-1 target = %v, want 24", d.TargetTemperature)
		}
	}
}

func TestErrorCarriesStatusAndSentinel(t *testing.T) {
	c := newTestClient(t)

	err := c.TurnOnLight(context.Background(), "no-such-light")
	if err == nil {
		t.Fatal("expected error for unknown device")
	}
	if !errors.Is(err, gateway.ErrGateway) {
		t.Errorf("errors.Is(err, ErrGateway) = false, err = %v", err)
	}
	var gerr *gateway.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error is %T, want *gateway.Error", err)
	}
	if gerr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want %d", gerr.Status, http.StatusNotFound)
	}
	if gerr.EntityID != "no-such-light" {
		t.Errorf("entity id = %q, want no-such-light", gerr.EntityID)
	}
}

func TestSceneActivate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.ActivateScene(ctx, "scene-evening"); err != nil {
		t.Fatalf("ActivateScene: %v", err)
	}
	scenes, err := c.Scenes(ctx)
	if err != nil {
		t.Fatalf("Scenes: %v", err)
	}
	var active bool
	for _, sc := range scenes {
		if sc.ID == "scene-evening" {
			active = sc.Active
		}
	}
	if !active {
		t.Error("scene-evening should be active after activation")
	}
}

func TestSecurityAndActivities(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.Arm(ctx); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	status, err := c.SecurityStatus(ctx)
	if err != nil {
		t.Fatalf("SecurityStatus: %v", err)
	}
	if status != domain.SecurityArmed {
		t.Errorf("status = %q, want %q", status, domain.SecurityArmed)
	}

	activities, err := c.Activities(ctx)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("len(activities) = %d, want 1", len(activities))
	}

	if err := c.Disarm(ctx); err != nil {
		t.Fatalf("Disarm: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Devices(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
