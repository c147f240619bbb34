package entity

import (
	"context"
	"encoding/json"
	"time"
)

// Estados de agendamiento de un Lead (columna calendly_status)
const (
	SchedulingPending     = "pending"
	SchedulingScheduled   = "scheduled"
	SchedulingCancelled   = "cancelled"
	SchedulingRescheduled = "rescheduled"
)

// Lead: una persona que llenó el formulario de contacto del sitio.
// Los campos opcionales quedan en nil cuando el visitante no los llenó,
// para distinguir "no enviado" de "enviado vacío".
type Lead struct {
	ID          int64   `json:"id"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Budget      *string `json:"budget"`
	DownPayment *string `json:"downPayment"`
	WhatInMind  *string `json:"whatInMind"`
	ProjectSlug *string `json:"projectSlug"`

	// Estado de agendamiento, todo nullable hasta que llegue un webhook
	AppointmentDate     *time.Time      `json:"appointmentDate"`
	CalendlyEventID     *string         `json:"calendlyEventId"`
	CalendlyStatus      string          `json:"calendlyStatus"`
	CalendlyInviteeName *string         `json:"calendlyInviteeName"`
	CalendlyRawPayload  json.RawMessage `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// SchedulingUpdate: campos que un webhook de Calendly sobrescribe en el Lead.
type SchedulingUpdate struct {
	AppointmentDate *time.Time
	EventID         string
	Status          string
	InviteeName     string
	RawPayload      json.RawMessage
}

type LeadRepositoryInterface interface {
	// Create persiste el lead y rellena ID y CreatedAt asignados por la base.
	Create(ctx context.Context, lead *Lead) error

	FindAll(ctx context.Context) ([]Lead, error)

	// FindByEmail: match exacto case-insensitive; si hay varios leads con el
	// mismo email devuelve el más reciente. (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*Lead, error)

	// UpdateScheduling sobrescribe el estado de agendamiento del lead más
	// reciente con ese email. (nil, nil) si ningún lead hace match: un webhook
	// sin lead es un caso esperado, no un error.
	UpdateScheduling(ctx context.Context, email string, update SchedulingUpdate) (*Lead, error)
}
