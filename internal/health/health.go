// Package health provides the read-only HTTP surface: liveness, running
// statistics, metrics and a debug scoring endpoint.
package health

// Status represents the health state of the service or a dependency.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// Report is the health endpoint response body.
type Report struct {
	Status         Status `json:"status"`
	Timestamp      int64  `json:"timestamp"`
	Version        string `json:"version"`
	Environment    string `json:"environment"`
	KafkaStatus    Status `json:"kafka_status"`
	DatabaseStatus Status `json:"database_status"`
	CacheStatus    Status `json:"cache_status"`
}
