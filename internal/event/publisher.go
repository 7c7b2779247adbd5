package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AlertPublisher publishes monitoring alert events to RabbitMQ. A nil
// publisher is valid and drops events, so callers never need to branch on
// whether messaging is configured.
type AlertPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewAlertPublisher creates a new alert event publisher
func NewAlertPublisher(conn *RabbitMQConnection) *AlertPublisher {
	return &AlertPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishEvent publishes an alert event to the push_alert_events queue
func (p *AlertPublisher) PublishEvent(ctx context.Context, event AlertEvent) error {
	if p == nil || p.conn == nil {
		return nil
	}

	_, err := p.conn.Channel.QueueDeclare(
		AlertQueue, // queue name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",         // exchange
		AlertQueue, // routing key (queue name)
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish alert event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Alert event published",
		"queue", AlertQueue,
		"alert_id", event.AlertID,
		"severity", event.Severity,
	)

	return nil
}

// GetMetrics returns publisher metrics
func (p *AlertPublisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"last_publish_time":  p.lastPublishTime,
		"queue":              AlertQueue,
	}
}

// HealthCheck returns the health status of the publisher
func (p *AlertPublisher) HealthCheck() PublisherHealthStatus {
	isHealthy := p != nil && p.conn != nil && p.conn.Connection != nil && !p.conn.Connection.IsClosed()

	status := PublisherHealthStatus{
		IsHealthy: isHealthy,
		Queue:     AlertQueue,
	}
	if p != nil {
		status.MessagesPublished = p.messagesPublished
		status.MessagesFailed = p.messagesFailed
		status.LastPublishTime = p.lastPublishTime
	}
	return status
}

// PublisherHealthStatus represents the health status of the publisher
type PublisherHealthStatus struct {
	IsHealthy         bool      `json:"is_healthy"`
	MessagesPublished int64     `json:"messages_published"`
	MessagesFailed    int64     `json:"messages_failed"`
	LastPublishTime   time.Time `json:"last_publish_time"`
	Queue             string    `json:"queue"`
}
