package database

import (
	"context"
	"time"
)

// HealthStatus reports the database connection pool's current state
// for the worker's /readyz endpoint.
type HealthStatus struct {
	Healthy      bool          `json:"healthy"`
	Latency      int64         `json:"latency_ms"`
	OpenConns    int           `json:"open_conns"`
	InUseConns   int           `json:"in_use_conns"`
	Error        string        `json:"error,omitempty"`
}

// Health pings the database and reports pool statistics.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	err := c.DB.PingContext(ctx)
	latency := time.Since(start)

	stats := c.DB.Stats()
	status := HealthStatus{
		Healthy:    err == nil,
		Latency:    latency.Milliseconds(),
		OpenConns:  stats.OpenConnections,
		InUseConns: stats.InUse,
	}
	if err != nil {
		status.Error = err.Error()
	}
	return status
}
