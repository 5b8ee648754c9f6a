package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/store"
)

// fakeGateway records every call and answers with respond (nil means
// success). List calls return empty collections unless overridden.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []string
	respond func(call string) error

	devices     []domain.Device
	rooms       []domain.Room
	scenes      []domain.Scene
	automations []domain.Automation
	activities  []domain.ActivityLog
	security    domain.SecurityStatus
}

func (g *fakeGateway) record(call string) error {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	respond := g.respond
	g.mu.Unlock()
	if respond != nil {
		return respond(call)
	}
	return nil
}

func (g *fakeGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.calls))
	copy(out, g.calls)
	return out
}

func (g *fakeGateway) Devices(context.Context) ([]domain.Device, error) {
	return g.devices, g.record("Devices")
}

func (g *fakeGateway) CreateDevice(_ context.Context, d domain.Device) (domain.Device, error) {
	d.Online = true
	return d, g.record("CreateDevice")
}

func (g *fakeGateway) UpdateDevice(_ context.Context, d domain.Device) error {
	return g.record("UpdateDevice")
}

func (g *fakeGateway) DeleteDevice(_ context.Context, id string) error {
	return g.record("DeleteDevice")
}

func (g *fakeGateway) TurnOnLight(_ context.Context, id string) error {
	return g.record("TurnOnLight")
}

func (g *fakeGateway) TurnOffLight(_ context.Context, id string) error {
	return g.record("TurnOffLight")
}

func (g *fakeGateway) LockDoor(_ context.Context, id string) error   { return g.record("LockDoor") }
func (g *fakeGateway) UnlockDoor(_ context.Context, id string) error { return g.record("UnlockDoor") }

func (g *fakeGateway) StartRecording(_ context.Context, id string) error {
	return g.record("StartRecording")
}

func (g *fakeGateway) StopRecording(_ context.Context, id string) error {
	return g.record("StopRecording")
}

func (g *fakeGateway) SetTargetHeat(_ context.Context, id string, target float64) error {
	return g.record("SetTargetHeat")
}

func (g *fakeGateway) Rooms(context.Context) ([]domain.Room, error) {
	return g.rooms, g.record("Rooms")
}

func (g *fakeGateway) CreateRoom(_ context.Context, r domain.Room) (domain.Room, error) {
	return r, g.record("CreateRoom")
}

func (g *fakeGateway) AssignDevice(_ context.Context, roomID, deviceID string) error {
	return g.record("AssignDevice")
}

func (g *fakeGateway) Scenes(context.Context) ([]domain.Scene, error) {
	return g.scenes, g.record("Scenes")
}

func (g *fakeGateway) CreateScene(_ context.Context, s domain.Scene) (domain.Scene, error) {
	return s, g.record("CreateScene")
}

func (g *fakeGateway) UpdateScene(_ context.Context, s domain.Scene) error {
	return g.record("UpdateScene")
}

func (g *fakeGateway) DeleteScene(_ context.Context, id string) error {
	return g.record("DeleteScene")
}

func (g *fakeGateway) ActivateScene(_ context.Context, id string) error {
	return g.record("ActivateScene")
}

func (g *fakeGateway) Automations(context.Context) ([]domain.Automation, error) {
	return g.automations, g.record("Automations")
}

func (g *fakeGateway) CreateAutomation(_ context.Context, a domain.Automation) (domain.Automation, error) {
	return a, g.record("CreateAutomation")
}

func (g *fakeGateway) UpdateAutomation(_ context.Context, a domain.Automation) error {
	return g.record("UpdateAutomation")
}

func (g *fakeGateway) DeleteAutomation(_ context.Context, id string) error {
	return g.record("DeleteAutomation")
}

func (g *fakeGateway) SecurityStatus(context.Context) (domain.SecurityStatus, error) {
	return g.security, g.record("SecurityStatus")
}

func (g *fakeGateway) Arm(context.Context) error    { return g.record("Arm") }
func (g *fakeGateway) Disarm(context.Context) error { return g.record("Disarm") }

func (g *fakeGateway) Activities(context.Context) ([]domain.ActivityLog, error) {
	return g.activities, g.record("Activities")
}

func seededStore() *store.Store {
	s := store.New()
	s.ReplaceRooms([]domain.Room{
		{ID: "room-1", Name: "Living Room", DeviceIDs: []string{"light-1", "thermostat-1", "lock-1", "camera-1"}},
		{ID: "room-2", Name: "Bedroom"},
	})
	s.ReplaceDevices([]domain.Device{
		{ID: "light-1", Name: "Lamp", Type: domain.TypeLight, RoomID: "room-1", Online: true},
		{ID: "thermostat-1", Name: "Thermostat", Type: domain.TypeThermostat, RoomID: "room-1", Online: true, TargetTemperature: 20},
		{ID: "lock-1", Name: "Front Door", Type: domain.TypeLock, RoomID: "room-1", Online: true, Locked: true},
		{ID: "camera-1", Name: "Cam", Type: domain.TypeCamera, RoomID: "room-1", Online: true},
	})
	v := 23.0
	s.ReplaceScenes([]domain.Scene{
		{ID: "scene-1", Name: "Cosy", Actions: []domain.Action{
			{Kind: domain.KindDeviceControl, TargetID: "light-1", Op: domain.OpTurnOn},
			{Kind: domain.KindDeviceControl, TargetID: "thermostat-1", Op: domain.OpSetTemperature, Value: &v},
		}},
	})
	s.ReplaceAutomations([]domain.Automation{
		{ID: "auto-1", Name: "Morning", Time: "07:00", Days: []string{"Mon"}, Active: true, Actions: []domain.Action{
			{Kind: domain.KindDeviceControl, TargetID: "light-1", Op: domain.OpTurnOn},
		}},
	})
	return s
}

func newTestController(respond func(string) error) (*Controller, *fakeGateway, *Recorder) {
	gw := &fakeGateway{respond: respond}
	rec := &Recorder{}
	c := New(seededStore(), gw, rec, nil)
	return c, gw, rec
}

func TestToggleLightAppliesImmediately(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c, _, _ := newTestController(func(string) error {
		close(started)
		<-release
		return nil
	})

	c.ToggleLight(context.Background(), "light-1")

	// The flip must be visible before the gateway call resolves.
	d, _ := c.Store().Device("light-1")
	if !d.On {
		t.Fatal("light should be on immediately after toggle")
	}
	<-started
	close(release)
	c.Wait()

	d, _ = c.Store().Device("light-1")
	if !d.On {
		t.Error("successful dispatch should keep the optimistic state")
	}
}

func TestToggleLightRollsBackOnFailure(t *testing.T) {
	c, gw, rec := newTestController(func(string) error {
		return errors.New("backend rejected")
	})

	c.ToggleLight(context.Background(), "light-1")
	c.Wait()

	d, _ := c.Store().Device("light-1")
	if d.On {
		t.Error("failed dispatch should revert the flip")
	}
	ns := rec.Notifications()
	if len(ns) != 1 {
		t.Fatalf("len(notifications) = %d, want 1", len(ns))
	}
	if ns[0].Level != LevelError {
		t.Errorf("level = %q, want %q", ns[0].Level, LevelError)
	}
	if ns[0].EntityID != "light-1" {
		t.Errorf("entity = %q, want light-1", ns[0].EntityID)
	}
	if got := gw.Calls(); len(got) != 1 || got[0] != "TurnOnLight" {
		t.Errorf("calls = %v, want [TurnOnLight]", got)
	}
}

func TestStaleFailureDoesNotRollBackNewerState(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var once sync.Once
	c, _, rec := newTestController(func(call string) error {
		if call == "TurnOnLight" {
			once.Do(func() { close(firstStarted) })
			<-releaseFirst
			return errors.New("timed out")
		}
		return nil
	})

	ctx := context.Background()
	c.ToggleLight(ctx, "light-1") // on, will fail late
	<-firstStarted
	c.ToggleLight(ctx, "light-1") // off, succeeds; owns the entity now
	close(releaseFirst)
	c.Wait()

	d, _ := c.Store().Device("light-1")
	if d.On {
		t.Error("stale failure must not undo the newer command's state")
	}
	ns := rec.Notifications()
	if len(ns) != 1 {
		t.Fatalf("len(notifications) = %d, want 1 (stale failure still reported)", len(ns))
	}
	if ns[0].Level != LevelError {
		t.Errorf("level = %q, want %q", ns[0].Level, LevelError)
	}
}

func TestToggleUnknownDeviceIsNoOp(t *testing.T) {
	c, gw, rec := newTestController(nil)

	c.ToggleLight(context.Background(), "no-such")
	c.ToggleLock(context.Background(), "no-such")
	c.ToggleRecording(context.Background(), "no-such")
	c.SetTargetTemperature(context.Background(), "no-such", 21)
	c.Wait()

	if got := gw.Calls(); len(got) != 0 {
		t.Errorf("calls = %v, want none", got)
	}
	if got := rec.Notifications(); len(got) != 0 {
		t.Errorf("notifications = %v, want none", got)
	}
}

func TestToggleWrongTypeIsNoOp(t *testing.T) {
	c, gw, _ := newTestController(nil)

	c.ToggleLight(context.Background(), "lock-1")
	c.Wait()

	if got := gw.Calls(); len(got) != 0 {
		t.Errorf("calls = %v, want none", got)
	}
}

func TestManualControlDeactivatesReferencingScene(t *testing.T) {
	c, _, _ := newTestController(nil)

	// Mark the scene active first, then control one of its devices.
	undo, ok := c.Store().MutateScene("scene-1", func(s *domain.Scene) { s.Active = true })
	if !ok || undo == nil {
		t.Fatal("scene-1 should exist")
	}

	c.ToggleLight(context.Background(), "light-1")
	c.Wait()

	sc, _ := c.Store().Scene("scene-1")
	if sc.Active {
		t.Error("manual device control should deactivate the referencing scene")
	}
}

func TestDeviceRollbackLeavesNewScenesAlone(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c, _, _ := newTestController(func(call string) error {
		if call == "TurnOnLight" {
			close(started)
			<-release
			return errors.New("timed out")
		}
		return nil
	})

	ctx := context.Background()
	c.ToggleLight(ctx, "light-1")
	<-started

	// A scene created (and confirmed) while the toggle is in flight must
	// survive the toggle's rollback.
	id := c.SaveScene(ctx, domain.Scene{Name: "Night", Actions: []domain.Action{
		{Kind: domain.KindDeviceControl, TargetID: "lock-1", Op: domain.OpLock},
	}})

	close(release)
	c.Wait()

	if _, ok := c.Store().Scene(id); !ok {
		t.Error("scene created during the toggle was erased by the toggle's rollback")
	}
	d, _ := c.Store().Device("light-1")
	if d.On {
		t.Error("the failed toggle itself should still revert")
	}
}

func TestSceneRollbackSkipsDevicesClaimedSince(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c, _, _ := newTestController(func(call string) error {
		if call == "ActivateScene" {
			close(started)
			<-release
			return errors.New("backend rejected")
		}
		return nil
	})

	ctx := context.Background()
	c.ActivateScene(ctx, "scene-1") // light-1 on, thermostat-1 to 23
	<-started

	// A newer command claims light-1 while the activation is in flight.
	c.UpdateDevice(ctx, domain.Device{
		ID: "light-1", Name: "Reading Lamp", Type: domain.TypeLight,
		RoomID: "room-1", Online: true,
	})

	close(release)
	c.Wait()

	d, _ := c.Store().Device("light-1")
	if d.On || d.Name != "Reading Lamp" {
		t.Errorf("light-1 = %+v, want the newer update untouched by the rollback", d)
	}
	th, _ := c.Store().Device("thermostat-1")
	if th.TargetTemperature != 20 {
		t.Errorf("thermostat target = %v, want 20 (unclaimed, so reverted)", th.TargetTemperature)
	}
	sc, _ := c.Store().Scene("scene-1")
	if sc.Active {
		t.Error("failed activation should revert the active flag")
	}
}

func TestActivateSceneAppliesAndConfirms(t *testing.T) {
	c, gw, _ := newTestController(nil)

	c.ActivateScene(context.Background(), "scene-1")

	d, _ := c.Store().Device("light-1")
	if !d.On {
		t.Error("scene action should apply to the light immediately")
	}
	th, _ := c.Store().Device("thermostat-1")
	if th.TargetTemperature != 23 {
		t.Errorf("target = %v, want 23", th.TargetTemperature)
	}
	sc, _ := c.Store().Scene("scene-1")
	if !sc.Active {
		t.Error("scene should be active")
	}
	c.Wait()

	if got := gw.Calls(); len(got) != 1 || got[0] != "ActivateScene" {
		t.Errorf("calls = %v, want [ActivateScene]", got)
	}
}

func TestActivateSceneAlreadyActive(t *testing.T) {
	c, gw, rec := newTestController(nil)

	c.ActivateScene(context.Background(), "scene-1")
	c.Wait()
	c.ActivateScene(context.Background(), "scene-1")
	c.Wait()

	if got := gw.Calls(); len(got) != 1 {
		t.Errorf("calls = %v, want just the first activation", got)
	}
	ns := rec.Notifications()
	if len(ns) != 1 {
		t.Fatalf("len(notifications) = %d, want 1", len(ns))
	}
	if ns[0].Level != LevelInfo {
		t.Errorf("level = %q, want %q", ns[0].Level, LevelInfo)
	}
}

func TestActivateSceneRollsBackEverything(t *testing.T) {
	c, _, rec := newTestController(func(string) error {
		return errors.New("backend down")
	})

	c.ActivateScene(context.Background(), "scene-1")
	c.Wait()

	d, _ := c.Store().Device("light-1")
	if d.On {
		t.Error("light should be reverted")
	}
	th, _ := c.Store().Device("thermostat-1")
	if th.TargetTemperature != 20 {
		t.Errorf("target = %v, want original 20", th.TargetTemperature)
	}
	sc, _ := c.Store().Scene("scene-1")
	if sc.Active {
		t.Error("scene should be reverted to inactive")
	}
	if len(rec.Notifications()) != 1 {
		t.Errorf("want exactly one failure notification, got %v", rec.Notifications())
	}
}

func TestSaveSceneCreateThenUpdate(t *testing.T) {
	c, gw, _ := newTestController(nil)
	ctx := context.Background()

	id := c.SaveScene(ctx, domain.Scene{Name: "Night", Actions: []domain.Action{
		{Kind: domain.KindDeviceControl, TargetID: "light-1", Op: domain.OpTurnOff},
	}})
	c.Wait()
	if id == "" {
		t.Fatal("SaveScene should assign an id")
	}
	if _, ok := c.Store().Scene(id); !ok {
		t.Fatal("scene should be in the store")
	}

	updated, _ := c.Store().Scene(id)
	updated.Name = "Late Night"
	c.SaveScene(ctx, updated)
	c.Wait()

	got, _ := c.Store().Scene(id)
	if got.Name != "Late Night" {
		t.Errorf("name = %q, want Late Night", got.Name)
	}
	calls := gw.Calls()
	if len(calls) != 2 || calls[0] != "CreateScene" || calls[1] != "UpdateScene" {
		t.Errorf("calls = %v, want [CreateScene UpdateScene]", calls)
	}
}

func TestRemoveDeviceRollback(t *testing.T) {
	c, _, rec := newTestController(func(string) error {
		return errors.New("refused")
	})

	c.RemoveDevice(context.Background(), "light-1")
	if _, ok := c.Store().Device("light-1"); ok {
		t.Fatal("device should be gone immediately")
	}
	c.Wait()

	if _, ok := c.Store().Device("light-1"); !ok {
		t.Error("failed delete should restore the device")
	}
	if len(rec.Notifications()) != 1 {
		t.Errorf("want one notification, got %v", rec.Notifications())
	}
}

func TestSetAutomationEnabled(t *testing.T) {
	c, gw, _ := newTestController(nil)
	ctx := context.Background()

	c.SetAutomationEnabled(ctx, "auto-1", false)
	c.Wait()
	a, _ := c.Store().Automation("auto-1")
	if a.Active {
		t.Error("automation should be disabled")
	}

	// Setting the current value again must not dispatch.
	c.SetAutomationEnabled(ctx, "auto-1", false)
	c.Wait()
	if got := gw.Calls(); len(got) != 1 {
		t.Errorf("calls = %v, want a single UpdateAutomation", got)
	}
}

func TestSecurityRoundTripAndRollback(t *testing.T) {
	c, _, rec := newTestController(func(call string) error {
		if call == "Arm" {
			return errors.New("siren offline")
		}
		return nil
	})
	ctx := context.Background()

	c.Arm(ctx)
	if got := c.Store().Security(); got != domain.SecurityArmed {
		t.Errorf("security = %q, want optimistic %q", got, domain.SecurityArmed)
	}
	c.Wait()
	if got := c.Store().Security(); got != domain.SecurityDisarmed {
		t.Errorf("security = %q, want reverted %q", got, domain.SecurityDisarmed)
	}
	if len(rec.Notifications()) != 1 {
		t.Errorf("want one notification, got %v", rec.Notifications())
	}
}

func TestRefreshFailureKeepsPreviousData(t *testing.T) {
	c, _, rec := newTestController(func(call string) error {
		if call == "Devices" {
			return errors.New("gateway unreachable")
		}
		return nil
	})

	if err := c.RefreshDevices(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := len(c.Store().Devices()); got != 4 {
		t.Errorf("len(devices) = %d, want previous 4", got)
	}
	ns := rec.Notifications()
	if len(ns) != 1 || ns[0].Level != LevelError {
		t.Fatalf("notifications = %v, want one error", ns)
	}
}

func TestRefreshAllContinuesPastFailures(t *testing.T) {
	c, gw, _ := newTestController(func(call string) error {
		if call == "Rooms" {
			return errors.New("boom")
		}
		return nil
	})
	gw.devices = []domain.Device{{ID: "d-1", Name: "New", Type: domain.TypeLight}}

	if err := c.RefreshAll(context.Background()); err == nil {
		t.Fatal("expected aggregate error")
	}
	if got := len(c.Store().Devices()); got != 1 {
		t.Errorf("len(devices) = %d, want refreshed 1", got)
	}
	if got := len(c.Store().Rooms()); got != 2 {
		t.Errorf("len(rooms) = %d, want previous 2", got)
	}
}

func TestHighlightExpires(t *testing.T) {
	c, _, _ := newTestController(nil)

	base := time.Now()
	c.now = func() time.Time { return base }
	c.ToggleLight(context.Background(), "light-1")
	c.Wait()

	if !c.Highlighted("light-1") {
		t.Error("entity should be highlighted right after mutation")
	}
	c.now = func() time.Time { return base.Add(highlightDuration) }
	if c.Highlighted("light-1") {
		t.Error("highlight should expire after the flash window")
	}
}
