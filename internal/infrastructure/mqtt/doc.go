// Package mqtt provides MQTT client connectivity for SparkPlan Core.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// SparkPlan publishes estimate lifecycle events (analysis seeded, panel
// synthesized, compliance checked) to the broker so office tooling can
// react without polling the HTTP API.
//
//	SparkPlan Core → MQTT Broker → dashboards / pricing sync / exporters
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to all compliance reports
//	err = client.Subscribe(mqtt.Topics{}.AllComplianceReports(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish an event
//	topic := mqtt.Topics{}.EstimateSeeded("est-42")
//	client.Publish(topic, payload, 1, false)
package mqtt
