package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// eventPublisher pushes analysis status updates to RabbitMQ so other
// services can follow progress. It is optional: a nil publisher (no broker
// configured) makes publish a no-op. Abandoned analyses publish nothing;
// staying silent is their contract.
type eventPublisher struct {
	conn *amqp.Connection
}

func newEventPublisher(url string) (*eventPublisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}
	return &eventPublisher{conn: conn}, nil
}

func (p *eventPublisher) publish(analysisID uuid.UUID, status, message string) {
	if p == nil || p.conn == nil {
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		log.Println("failed to open channel for update:", err)
		return
	}
	defer ch.Close()

	body, _ := json.Marshal(map[string]any{
		"analysis_id": analysisID,
		"status":      status,
		"message":     message,
		"timestamp":   time.Now(),
	})

	err = ch.Publish(
		"analysis_updates", // exchange
		fmt.Sprintf("analysis.%s", analysisID),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Println("failed to publish update:", err)
	}
}
