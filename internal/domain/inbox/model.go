package inbox

import "time"

// Event is a consumer-side dedup record (inbox pattern). The notifier
// stores processed event ids so a redelivered Kafka message never sends
// the same SMS twice.
type Event struct {
	Consumer      string    `json:"consumer"`
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	CorrelationID string    `json:"correlation_id"`
	ProcessedAt   time.Time `json:"processed_at"`
}
