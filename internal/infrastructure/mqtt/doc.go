// Package mqtt provides the MQTT subscriber used for Homeboard's live
// state feed.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Topic subscriptions with wildcard support
//   - Connection health monitoring
//
// # Architecture
//
// The backend publishes retained per-entity state messages; Homeboard
// subscribes and folds them into its local store between REST refreshes,
// so device flips made elsewhere show up without waiting for the next
// polling cycle.
//
//	Backend → MQTT Broker → Homeboard store
//
// The feed is strictly read-only: Homeboard never publishes. Commands go
// through the REST gateway, which is the only mutation path.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topics := mqtt.NewTopics(cfg.MQTT.TopicPrefix)
//	err = client.Subscribe(topics.AllDeviceStates(), 1,
//	    func(topic string, payload []byte) error {
//	        // decode and fold into the store
//	        return nil
//	    })
package mqtt
