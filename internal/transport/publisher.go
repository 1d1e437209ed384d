package transport

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// Publisher publishes encoded record sets to a Pub/Sub topic.
type Publisher struct {
	topic *pubsub.Topic
}

// NewPublisher constructs a Pub/Sub backed record set publisher.
func NewPublisher(topic *pubsub.Topic) (*Publisher, error) {
	if topic == nil {
		return nil, errors.New("pubsub publisher: topic is required")
	}
	return &Publisher{topic: topic}, nil
}

// Publish sends data with the given attributes and waits for the server
// assigned message id.
func (p *Publisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	if p == nil || p.topic == nil {
		return "", errors.New("pubsub publisher: not initialised")
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("publish record set: %w", err)
	}
	return id, nil
}

// Stop flushes pending messages and stops the topic's background goroutines.
func (p *Publisher) Stop() {
	if p != nil && p.topic != nil {
		p.topic.Stop()
	}
}
