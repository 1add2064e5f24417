package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Channels published by the outbox processor. Consumers (dashboards,
// notification daemons) subscribe to these.
const (
	ChannelAppointments = "appointments"
	ChannelOrders       = "orders"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
