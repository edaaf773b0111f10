package mqtt

import "fmt"

// Topic prefixes for the SparkPlan event bus.
//
// Estimate lifecycle events use the scheme: sparkplan/estimate/{id}/{event}
// so downstream consumers (office dashboards, pricing sync jobs) can
// subscribe per estimate or per event type.
const (
	// TopicPrefixRoot is the base for all SparkPlan topics.
	TopicPrefixRoot = "sparkplan"

	// TopicPrefixEstimate is the base for estimate lifecycle topics.
	TopicPrefixEstimate = "sparkplan/estimate"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "sparkplan/system"
)

// Topics provides builders for SparkPlan MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.EstimateSeeded("est-42")
//	// Returns: "sparkplan/estimate/est-42/seeded"
type Topics struct{}

// =============================================================================
// Estimate Lifecycle Topics
// =============================================================================

// EstimateCreated returns the topic for new-estimate events.
//
// Example: sparkplan/estimate/est-42/created
func (Topics) EstimateCreated(estimateID string) string {
	return fmt.Sprintf("%s/%s/created", TopicPrefixEstimate, estimateID)
}

// EstimateSeeded returns the topic for line-item seeding events, published
// after the requirement engine runs over a room analysis.
//
// Example: sparkplan/estimate/est-42/seeded
func (Topics) EstimateSeeded(estimateID string) string {
	return fmt.Sprintf("%s/%s/seeded", TopicPrefixEstimate, estimateID)
}

// PanelSynthesized returns the topic for circuit-schedule events.
//
// Example: sparkplan/estimate/est-42/panel
func (Topics) PanelSynthesized(estimateID string) string {
	return fmt.Sprintf("%s/%s/panel", TopicPrefixEstimate, estimateID)
}

// ComplianceChecked returns the topic for compliance-report events.
//
// Example: sparkplan/estimate/est-42/compliance
func (Topics) ComplianceChecked(estimateID string) string {
	return fmt.Sprintf("%s/%s/compliance", TopicPrefixEstimate, estimateID)
}

// EstimateDeleted returns the topic for estimate deletion events.
//
// Example: sparkplan/estimate/est-42/deleted
func (Topics) EstimateDeleted(estimateID string) string {
	return fmt.Sprintf("%s/%s/deleted", TopicPrefixEstimate, estimateID)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the service status topic (online/offline, LWT).
//
// Example: sparkplan/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// SystemShutdown returns the shutdown signal topic.
//
// Example: sparkplan/system/shutdown
func (Topics) SystemShutdown() string {
	return fmt.Sprintf("%s/shutdown", TopicPrefixSystem)
}

// =============================================================================
// Wildcard Patterns for Subscriptions
// =============================================================================

// AllEstimateEvents returns a pattern matching every lifecycle event for
// every estimate.
//
// Pattern: sparkplan/estimate/+/+
func (Topics) AllEstimateEvents() string {
	return fmt.Sprintf("%s/+/+", TopicPrefixEstimate)
}

// EstimateEvents returns a pattern matching all events for one estimate.
//
// Pattern: sparkplan/estimate/est-42/+
func (Topics) EstimateEvents(estimateID string) string {
	return fmt.Sprintf("%s/%s/+", TopicPrefixEstimate, estimateID)
}

// AllComplianceReports returns a pattern matching compliance events across
// all estimates.
//
// Pattern: sparkplan/estimate/+/compliance
func (Topics) AllComplianceReports() string {
	return fmt.Sprintf("%s/+/compliance", TopicPrefixEstimate)
}

// AllTopics returns a pattern matching all SparkPlan topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: sparkplan/#
func (Topics) AllTopics() string {
	return "sparkplan/#"
}
