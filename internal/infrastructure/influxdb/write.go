package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteAnalysisRun records one room-analysis pass: how many rooms came in,
// how many line items the requirement engine produced, and how long the
// pass took. The write is non-blocking; data is batched and sent
// asynchronously.
//
// Example:
//
//	client.WriteAnalysisRun("est-42", 12, 87, 43.5)
func (c *Client) WriteAnalysisRun(estimateID string, rooms int, lineItems int, durationMS float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"analysis_runs",
		map[string]string{
			"estimate_id": estimateID,
		},
		map[string]interface{}{
			"rooms":       rooms,
			"line_items":  lineItems,
			"duration_ms": durationMS,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePanelSummary records the outcome of a circuit synthesis run.
//
// Parameters:
//   - estimateID: Estimate the schedule belongs to
//   - circuits: Number of circuits synthesized
//   - totalAmps: Sum of ampacity x poles across the schedule
func (c *Client) WritePanelSummary(estimateID string, circuits int, totalAmps int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"panel_synthesis",
		map[string]string{
			"estimate_id": estimateID,
		},
		map[string]interface{}{
			"circuits":   circuits,
			"total_amps": totalAmps,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteComplianceResult records a compliance run's score and per-status
// finding counts, so score trends across revisions of an estimate are
// queryable.
func (c *Client) WriteComplianceResult(estimateID string, scorePct float64, passes, warns, fails int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"compliance_runs",
		map[string]string{
			"estimate_id": estimateID,
		},
		map[string]interface{}{
			"score_pct": scorePct,
			"pass":      passes,
			"warn":      warns,
			"fail":      fails,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "core-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
