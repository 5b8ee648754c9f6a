package sim

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sideduran/homeboard/internal/domain"
)

// Handler builds the simulator's HTTP handler over the given state.
func Handler(st *State) http.Handler {
	s := &server{state: st}
	return s.routes()
}

type server struct {
	state *State
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Post("/", s.handleCreateDevice)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDevice)
				r.Put("/", s.handleUpdateDevice)
				r.Delete("/", s.handleDeleteDevice)
			})
		})

		r.Post("/lights/{id}/turn-on", s.deviceAction(domain.TypeLight, "turned on", "Light turned on", domain.IconLight, func(d *domain.Device) { d.On = true }))
		r.Post("/lights/{id}/turn-off", s.deviceAction(domain.TypeLight, "turned off", "Light turned off", domain.IconLight, func(d *domain.Device) { d.On = false }))
		r.Post("/locks/{id}/lock", s.deviceAction(domain.TypeLock, "locked", "Door locked", domain.IconLock, func(d *domain.Device) { d.Locked = true }))
		r.Post("/locks/{id}/unlock", s.deviceAction(domain.TypeLock, "unlocked", "Door unlocked", domain.IconLock, func(d *domain.Device) { d.Locked = false }))
		r.Post("/cameras/{id}/start-recording", s.deviceAction(domain.TypeCamera, "started recording", "Recording started", domain.IconCamera, func(d *domain.Device) { d.Recording = true; d.On = true }))
		r.Post("/cameras/{id}/stop-recording", s.deviceAction(domain.TypeCamera, "stopped recording", "Recording stopped", domain.IconCamera, func(d *domain.Device) { d.Recording = false }))
		r.Post("/thermostats/{id}/set-target-heat", s.handleSetTargetHeat)

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", s.handleListRooms)
			r.Post("/", s.handleCreateRoom)
			r.Post("/{roomId}/devices/{deviceId}", s.handleAssignDevice)
		})

		r.Route("/scenes", func(r chi.Router) {
			r.Get("/", s.handleListScenes)
			r.Post("/", s.handleCreateScene)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetScene)
				r.Put("/", s.handleUpdateScene)
				r.Delete("/", s.handleDeleteScene)
				r.Post("/activate", s.handleActivateScene)
			})
		})

		r.Route("/automations", func(r chi.Router) {
			r.Get("/", s.handleListAutomations)
			r.Post("/", s.handleCreateAutomation)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.handleUpdateAutomation)
				r.Delete("/", s.handleDeleteAutomation)
			})
		})

		r.Get("/security/status", s.handleSecurityStatus)
		r.Post("/security/arm", s.handleSetSecurity(domain.SecurityArmed))
		r.Post("/security/disarm", s.handleSetSecurity(domain.SecurityDisarmed))

		r.Get("/activities", s.handleListActivities)
	})

	return r
}

// --- Devices ---

func (s *server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	st := s.state
	st.mu.Lock()
	out := make([]domain.Device, 0, len(st.devices))
	for _, d := range st.devices {
		out = append(out, d.Clone())
	}
	st.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	st := s.state
	st.mu.Lock()
	d, ok := st.devices[chi.URLParam(r, "id")]
	var cpy domain.Device
	if ok {
		cpy = d.Clone()
	}
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, cpy)
}

func (s *server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var d domain.Device
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeBadRequest(w, "invalid device payload")
		return
	}
	if err := domain.ValidateDevice(&d); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	defaultsForType(&d)

	st := s.state
	st.mu.Lock()
	st.devices[d.ID] = &d
	if room, ok := st.rooms[d.RoomID]; ok {
		room.DeviceIDs = append(room.DeviceIDs, d.ID)
	}
	st.logActivity(d.ID, "added", "Device registered", domain.IconForDeviceType(d.Type))
	cpy := d.Clone()
	st.mu.Unlock()

	writeJSON(w, http.StatusCreated, cpy)
}

func (s *server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var d domain.Device
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeBadRequest(w, "invalid device payload")
		return
	}
	d.ID = id

	st := s.state
	st.mu.Lock()
	prev, ok := st.devices[id]
	if ok {
		if prev.RoomID != d.RoomID {
			if room, exists := st.rooms[prev.RoomID]; exists {
				room.DeviceIDs = removeString(room.DeviceIDs, id)
			}
			if room, exists := st.rooms[d.RoomID]; exists {
				room.DeviceIDs = append(removeString(room.DeviceIDs, id), id)
			}
		}
		st.devices[id] = &d
	}
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st := s.state
	st.mu.Lock()
	_, ok := st.devices[id]
	delete(st.devices, id)
	for _, room := range st.rooms {
		room.DeviceIDs = removeString(room.DeviceIDs, id)
	}
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// deviceAction builds a capability endpoint handler: mutate the device,
// append an audit entry, and deactivate scenes the manual control broke.
func (s *server) deviceAction(wantType domain.DeviceType, action, details string, icon domain.IconType, mutate func(*domain.Device)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		st := s.state
		st.mu.Lock()
		d, ok := st.devices[id]
		if ok && d.Type != wantType {
			st.mu.Unlock()
			writeBadRequest(w, "device type mismatch")
			return
		}
		if ok {
			mutate(d)
			st.logActivity(id, action, details, icon)
			st.deactivateScenesFor(id)
		}
		st.mu.Unlock()

		if !ok {
			writeNotFound(w, "device not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *server) handleSetTargetHeat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		TargetTemperature float64 `json:"targetTemperature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid payload")
		return
	}

	st := s.state
	st.mu.Lock()
	d, ok := st.devices[id]
	if ok && d.Type != domain.TypeThermostat {
		st.mu.Unlock()
		writeBadRequest(w, "device type mismatch")
		return
	}
	if ok {
		d.TargetTemperature = body.TargetTemperature
		st.logActivity(id, "target changed", "Target temperature set", domain.IconThermostat)
		st.deactivateScenesFor(id)
	}
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "device not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Rooms ---

func (s *server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	st := s.state
	st.mu.Lock()
	out := make([]domain.Room, 0, len(st.rooms))
	for _, r := range st.rooms {
		out = append(out, r.Clone())
	}
	st.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var room domain.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		writeBadRequest(w, "invalid room payload")
		return
	}
	if err := domain.ValidateName(room.Name); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}

	st := s.state
	st.mu.Lock()
	st.rooms[room.ID] = &room
	cpy := room.Clone()
	st.mu.Unlock()

	writeJSON(w, http.StatusCreated, cpy)
}

func (s *server) handleAssignDevice(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	deviceID := chi.URLParam(r, "deviceId")

	st := s.state
	st.mu.Lock()
	room, roomOK := st.rooms[roomID]
	device, deviceOK := st.devices[deviceID]
	if roomOK && deviceOK {
		if prev, ok := st.rooms[device.RoomID]; ok {
			prev.DeviceIDs = removeString(prev.DeviceIDs, deviceID)
		}
		device.RoomID = roomID
		room.DeviceIDs = append(removeString(room.DeviceIDs, deviceID), deviceID)
	}
	st.mu.Unlock()

	if !roomOK || !deviceOK {
		writeNotFound(w, "room or device not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

// --- Scenes ---

func (s *server) handleListScenes(w http.ResponseWriter, _ *http.Request) {
	st := s.state
	st.mu.Lock()
	out := make([]domain.Scene, 0, len(st.scenes))
	for _, sc := range st.scenes {
		out = append(out, sc.Clone())
	}
	st.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	st := s.state
	st.mu.Lock()
	sc, ok := st.scenes[chi.URLParam(r, "id")]
	var cpy domain.Scene
	if ok {
		cpy = sc.Clone()
	}
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "scene not found")
		return
	}
	writeJSON(w, http.StatusOK, cpy)
}

func (s *server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	var sc domain.Scene
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeBadRequest(w, "invalid scene payload")
		return
	}
	if err := domain.ValidateScene(&sc); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if sc.ID == "" {
		sc.ID = uuid.NewString()
	}
	sc.Active = false

	st := s.state
	st.mu.Lock()
	st.scenes[sc.ID] = &sc
	cpy := sc.Clone()
	st.mu.Unlock()

	writeJSON(w, http.StatusCreated, cpy)
}

func (s *server) handleUpdateScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var sc domain.Scene
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		writeBadRequest(w, "invalid scene payload")
		return
	}
	if err := domain.ValidateScene(&sc); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	sc.ID = id

	st := s.state
	st.mu.Lock()
	_, ok := st.scenes[id]
	if ok {
		// Edited actions may no longer match device state.
		sc.Active = false
		st.scenes[id] = &sc
	}
	cpy := sc.Clone()
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "scene not found")
		return
	}
	writeJSON(w, http.StatusOK, cpy)
}

func (s *server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st := s.state
	st.mu.Lock()
	_, ok := st.scenes[id]
	delete(st.scenes, id)
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "scene not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *server) handleActivateScene(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st := s.state
	st.mu.Lock()
	sc, ok := st.scenes[id]
	if ok {
		for _, a := range sc.Actions {
			st.applyAction(a)
		}
		sc.Active = true
		st.logActivity(id, "activated", "Scene activated", domain.IconScene)
	}
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "scene not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

// --- Automations ---

func (s *server) handleListAutomations(w http.ResponseWriter, _ *http.Request) {
	st := s.state
	st.mu.Lock()
	out := make([]domain.Automation, 0, len(st.automations))
	for _, a := range st.automations {
		out = append(out, a.Clone())
	}
	st.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleCreateAutomation(w http.ResponseWriter, r *http.Request) {
	var a domain.Automation
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeBadRequest(w, "invalid automation payload")
		return
	}
	if err := domain.ValidateAutomation(&a); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	st := s.state
	st.mu.Lock()
	st.automations[a.ID] = &a
	cpy := a.Clone()
	st.mu.Unlock()

	writeJSON(w, http.StatusCreated, cpy)
}

func (s *server) handleUpdateAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var a domain.Automation
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeBadRequest(w, "invalid automation payload")
		return
	}
	if err := domain.ValidateAutomation(&a); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	a.ID = id

	st := s.state
	st.mu.Lock()
	_, ok := st.automations[id]
	if ok {
		st.automations[id] = &a
	}
	cpy := a.Clone()
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "automation not found")
		return
	}
	writeJSON(w, http.StatusOK, cpy)
}

func (s *server) handleDeleteAutomation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st := s.state
	st.mu.Lock()
	_, ok := st.automations[id]
	delete(st.automations, id)
	st.mu.Unlock()

	if !ok {
		writeNotFound(w, "automation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Security & activities ---

func (s *server) handleSecurityStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.state
	st.mu.Lock()
	status := st.security
	st.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]domain.SecurityStatus{"status": status})
}

func (s *server) handleSetSecurity(status domain.SecurityStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		st := s.state
		st.mu.Lock()
		st.security = status
		details := "Security system disarmed"
		if status == domain.SecurityArmed {
			details = "Security system armed"
		}
		st.logActivity(securitySystemID, string(status), details, domain.IconSecurity)
		st.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]domain.SecurityStatus{"status": status})
	}
}

func (s *server) handleListActivities(w http.ResponseWriter, _ *http.Request) {
	st := s.state
	st.mu.Lock()
	out := make([]domain.ActivityLog, len(st.activities))
	copy(out, st.activities)
	st.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write; the client may have gone away
		json.NewEncoder(w).Encode(v)
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": message})
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
