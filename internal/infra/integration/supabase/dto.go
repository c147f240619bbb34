package supabase

import (
	"encoding/json"
	"time"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

// leadRecord: fila de la tabla leads tal como la devuelve PostgREST.
type leadRecord struct {
	ID                  int64           `json:"id"`
	FullName            string          `json:"full_name"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	Budget              *string         `json:"budget"`
	DownPayment         *string         `json:"down_payment"`
	WhatInMind          *string         `json:"what_in_mind"`
	ProjectSlug         *string         `json:"project_slug"`
	AppointmentDate     *time.Time      `json:"appointment_date"`
	CalendlyEventID     *string         `json:"calendly_event_id"`
	CalendlyStatus      string          `json:"calendly_status"`
	CalendlyInviteeName *string         `json:"calendly_invitee_name"`
	CalendlyRawPayload  json.RawMessage `json:"calendly_raw_payload"`
	CreatedAt           time.Time       `json:"created_at"`
}

func (r leadRecord) toEntity() entity.Lead {
	return entity.Lead{
		ID:                  r.ID,
		FullName:            r.FullName,
		Email:               r.Email,
		Phone:               r.Phone,
		Budget:              r.Budget,
		DownPayment:         r.DownPayment,
		WhatInMind:          r.WhatInMind,
		ProjectSlug:         r.ProjectSlug,
		AppointmentDate:     r.AppointmentDate,
		CalendlyEventID:     r.CalendlyEventID,
		CalendlyStatus:      r.CalendlyStatus,
		CalendlyInviteeName: r.CalendlyInviteeName,
		CalendlyRawPayload:  r.CalendlyRawPayload,
		CreatedAt:           r.CreatedAt,
	}
}

// postgrestError: cuerpo de error estándar de PostgREST.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}
