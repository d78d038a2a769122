// Package queue defines message payloads exchanged over the message broker.
package queue

// PredictionCreatedEvent is published after a prediction is successfully
// stored.  It carries enough for downstream consumers to log or feed
// analytics without querying the primary database.
type PredictionCreatedEvent struct {
	PredictionID uint64  `json:"prediction_id"`
	UserID       uint64  `json:"user_id"`
	Price        float64 `json:"predicted_price"`
	CreatedAt    string  `json:"created_at"`
}
