// Package influxdb provides InfluxDB connectivity for SparkPlan Core.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched writes, and health monitoring.
//
// # Purpose
//
// This package records operational time series:
//   - Analysis runs (rooms in, line items out, duration)
//   - Panel synthesis summaries (circuit count, connected amps)
//   - Compliance scores per run
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "sparkplan",
//	    Bucket: "metrics",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteAnalysisRun("est-42", 12, 87, 43.5)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This keeps request-path latency flat even when the metrics server is slow.
package influxdb
