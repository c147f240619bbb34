package calendly

import (
	"strings"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/usecase"
)

// ToSchedulingEvent traduce el webhook de Calendly al evento neutro que
// entiende el reconciliador. rawBody es el body exacto recibido.
func ToSchedulingEvent(event *WebhookEvent, rawBody []byte) usecase.SchedulingEvent {
	return usecase.SchedulingEvent{
		Type:         event.Event,
		InviteeEmail: strings.TrimSpace(event.Payload.Email),
		InviteeName:  strings.TrimSpace(event.Payload.Name),
		EventID:      extractEventID(event.Payload.ScheduledEvent.URI),
		StartTime:    event.Payload.ScheduledEvent.StartTime,
		RawPayload:   rawBody,
	}
}

// El id externo del evento es el último segmento del URI:
// https://api.calendly.com/scheduled_events/AAAA-BBBB -> AAAA-BBBB
func extractEventID(uri string) string {
	uri = strings.TrimRight(uri, "/")
	if uri == "" {
		return ""
	}
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}
