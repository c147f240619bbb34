package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

// LeadCapturedPayload: mensaje que consume el worker de notificaciones.
type LeadCapturedPayload struct {
	NotificationID string `json:"notification_id"`
	LeadID         int64  `json:"lead_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ProjectSlug    string `json:"project_slug,omitempty"`
	CapturedAt     string `json:"captured_at"`
}

func NewLeadCapturedPayload(lead *entity.Lead) LeadCapturedPayload {
	payload := LeadCapturedPayload{
		NotificationID: uuid.New().String(),
		LeadID:         lead.ID,
		FullName:       lead.FullName,
		Email:          lead.Email,
		Phone:          lead.Phone,
		CapturedAt:     lead.CreatedAt.Format(time.RFC3339),
	}
	if lead.ProjectSlug != nil {
		payload.ProjectSlug = *lead.ProjectSlug
	}
	return payload
}

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error serializando payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.NotificationID,
			Body:         body,
			DeliveryMode: amqp.Persistent, // sobrevive reinicios del broker
		},
	)
	if err != nil {
		return fmt.Errorf("falla publicando en RabbitMQ: %w", err)
	}

	return nil
}
