package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

// SchedulingEvent: webhook de Calendly ya autenticado y parseado. RawPayload
// guarda el body exacto recibido, como blob opaco de auditoría.
type SchedulingEvent struct {
	Type         string
	InviteeEmail string
	InviteeName  string
	EventID      string
	StartTime    *time.Time
	RawPayload   json.RawMessage
}

// Resultado de la reconciliación, solo para logs y métricas. El transporte
// del webhook siempre responde 200: Calendly reintenta indefinidamente ante
// cualquier status de fallo y cada reintento viene firmado de nuevo.
type ReconcileOutcome string

const (
	OutcomeUpdated    ReconcileOutcome = "updated"
	OutcomeNoMatch    ReconcileOutcome = "no_match"
	OutcomeSkipped    ReconcileOutcome = "skipped"
	OutcomeIgnored    ReconcileOutcome = "ignored"
	OutcomeStoreError ReconcileOutcome = "store_error"
)

type ReconcileAppointmentUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewReconcileAppointmentUseCase(repo entity.LeadRepositoryInterface) *ReconcileAppointmentUseCase {
	return &ReconcileAppointmentUseCase{Repo: repo}
}

// Execute cruza el evento con el lead por email y actualiza su estado de
// agendamiento. Nunca devuelve error: todo desenlace se reporta como outcome.
func (uc *ReconcileAppointmentUseCase) Execute(ctx context.Context, event SchedulingEvent) ReconcileOutcome {
	status, recognized := statusForEventType(event.Type)
	if !recognized {
		log.Printf("ℹ️ Webhook Calendly con tipo desconocido %q, se ignora", event.Type)
		return OutcomeIgnored
	}

	// Calendly manda pings de conectividad/pruebas con payload parcial;
	// se reciben y se saltan, no son un error.
	if event.InviteeEmail == "" || event.EventID == "" {
		log.Printf("ℹ️ Webhook Calendly %q incompleto (email o event id vacío), se salta", event.Type)
		return OutcomeSkipped
	}

	update := entity.SchedulingUpdate{
		AppointmentDate: event.StartTime,
		EventID:         event.EventID,
		Status:          status,
		InviteeName:     event.InviteeName,
		RawPayload:      event.RawPayload,
	}

	lead, err := uc.Repo.UpdateScheduling(ctx, strings.ToLower(event.InviteeEmail), update)
	if err != nil {
		log.Printf("❌ Error actualizando agendamiento para %s: %v", event.InviteeEmail, err)
		return OutcomeStoreError
	}
	if lead == nil {
		log.Printf("ℹ️ Webhook Calendly %q sin lead para %s", event.Type, event.InviteeEmail)
		return OutcomeNoMatch
	}

	log.Printf("✅ Lead %d ahora %s (evento %s)", lead.ID, status, event.EventID)
	return OutcomeUpdated
}

// Mapa tipo de evento → estado. Un lead puede oscilar entre scheduled,
// cancelled y rescheduled tantas veces como la persona reagende.
func statusForEventType(eventType string) (string, bool) {
	switch eventType {
	case "invitee.created":
		return entity.SchedulingScheduled, true
	case "invitee.canceled", "invitee.cancelled":
		return entity.SchedulingCancelled, true
	case "invitee.updated", "invitee.rescheduled":
		return entity.SchedulingRescheduled, true
	default:
		return "", false
	}
}
