// Package events publishes index updates to NATS so external consumers
// (site rebuild hooks, mirrors) can react to a refreshed project list.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher publishes JSON payloads to a fixed NATS subject
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// Connect creates a new Publisher instance
func Connect(natsURL, subject string) (*Publisher, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		nc:      nc,
		subject: subject,
	}, nil
}

// PublishJSON serializes the payload and publishes it to the subject
func (p *Publisher) PublishJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}

// Close cleanly shuts down the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
