// Package statefeed folds the backend's retained MQTT state messages into
// the local store, so changes made by other clients or by automations show
// up between REST refreshes.
package statefeed

import (
	"encoding/json"
	"fmt"

	"github.com/sideduran/homeboard/internal/domain"
	"github.com/sideduran/homeboard/internal/infrastructure/logging"
	"github.com/sideduran/homeboard/internal/infrastructure/mqtt"
	"github.com/sideduran/homeboard/internal/store"
)

// Subscriber is the broker surface the feed attaches to. *mqtt.Client
// satisfies it.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// Feed decodes state messages and applies them to the store.
type Feed struct {
	store  *store.Store
	topics mqtt.Topics
	qos    byte
	log    *logging.Logger
}

// New creates a feed for the given store and topic prefix.
func New(st *store.Store, prefix string, qos byte, log *logging.Logger) *Feed {
	if log == nil {
		log = logging.Default()
	}
	return &Feed{
		store:  st,
		topics: mqtt.NewTopics(prefix),
		qos:    qos,
		log:    log.With("component", "statefeed"),
	}
}

// Attach subscribes every feed topic on the broker client. Call it after
// the client connects; the client re-subscribes on reconnect by itself.
func (f *Feed) Attach(sub Subscriber) error {
	subs := []struct {
		topic   string
		handler mqtt.MessageHandler
	}{
		{f.topics.AllDeviceStates(), f.handleDevice},
		{f.topics.AllSceneStates(), f.handleScene},
		{f.topics.SecurityStatus(), f.handleSecurity},
		{f.topics.Activities(), f.handleActivity},
	}
	for _, s := range subs {
		if err := sub.Subscribe(s.topic, f.qos, s.handler); err != nil {
			return fmt.Errorf("attaching state feed to %s: %w", s.topic, err)
		}
	}
	return nil
}

func (f *Feed) handleDevice(topic string, payload []byte) error {
	id := f.topics.DeviceIDFromTopic(topic)
	if id == "" {
		return fmt.Errorf("unexpected device topic %q", topic)
	}

	var d domain.Device
	if err := json.Unmarshal(payload, &d); err != nil {
		return fmt.Errorf("decoding device state: %w", err)
	}
	// The topic is authoritative for identity; some publishers omit the id
	// from the payload.
	d.ID = id

	f.store.PutDevice(d)
	f.log.Debug("device state folded", "device", id)
	return nil
}

func (f *Feed) handleScene(topic string, payload []byte) error {
	id := f.topics.SceneIDFromTopic(topic)
	if id == "" {
		return fmt.Errorf("unexpected scene topic %q", topic)
	}

	var sc domain.Scene
	if err := json.Unmarshal(payload, &sc); err != nil {
		return fmt.Errorf("decoding scene state: %w", err)
	}
	sc.ID = id

	f.store.PutScene(sc)
	f.log.Debug("scene state folded", "scene", id)
	return nil
}

func (f *Feed) handleSecurity(_ string, payload []byte) error {
	var body struct {
		Status domain.SecurityStatus `json:"status"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return fmt.Errorf("decoding security status: %w", err)
	}
	if body.Status != domain.SecurityArmed && body.Status != domain.SecurityDisarmed {
		return fmt.Errorf("unknown security status %q", body.Status)
	}

	f.store.SetSecurity(body.Status)
	return nil
}

func (f *Feed) handleActivity(_ string, payload []byte) error {
	var entry domain.ActivityLog
	if err := json.Unmarshal(payload, &entry); err != nil {
		return fmt.Errorf("decoding activity entry: %w", err)
	}

	f.store.AppendActivity(entry)
	return nil
}
