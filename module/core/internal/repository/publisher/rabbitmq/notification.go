package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/simonmuehling/educafric-app-sub005/module/core/domain"
	"github.com/simonmuehling/educafric-app-sub005/module/core/internal/repository/publisher"
)

var _ publisher.NotificationPublisher = (*NotificationPublisher)(nil)

const (
	exchangeName = "safety.events"
	queueName    = "emergency_notifications"
)

type NotificationPublisher struct {
	ch *amqp.Channel
}

func NewNotificationPublisher(conn *amqp.Connection) (*NotificationPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &NotificationPublisher{ch: ch}, nil
}

type notificationMessage struct {
	AlertID       int64  `json:"alert_id"`
	ContactID     int64  `json:"contact_id"`
	Phone         string `json:"phone"`
	ResponseLevel string `json:"response_level"`
	Message       string `json:"message"`
}

func (p *NotificationPublisher) PublishEmergency(ctx context.Context, notification *domain.EmergencyNotification) error {
	msg := notificationMessage{
		AlertID:       notification.AlertID,
		ContactID:     notification.ContactID,
		Phone:         notification.Phone,
		ResponseLevel: string(notification.ResponseLevel),
		Message:       notification.Message,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
