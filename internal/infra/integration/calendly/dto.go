package calendly

import (
	"encoding/json"
	"time"
)

// WebhookEvent: payload v2 de los webhooks de Calendly. Solo se tipan los
// campos que la reconciliación necesita; el resto viaja en el body crudo
// que se guarda verbatim para auditoría.
type WebhookEvent struct {
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
	Payload   struct {
		Email          string `json:"email"`
		Name           string `json:"name"`
		ScheduledEvent struct {
			URI       string     `json:"uri"`
			Name      string     `json:"name"`
			StartTime *time.Time `json:"start_time"`
			EndTime   *time.Time `json:"end_time"`
		} `json:"scheduled_event"`
	} `json:"payload"`
}

func ParseEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
