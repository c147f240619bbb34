package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

// LeadRepository: acceso a la misma tabla leads pero vía la API REST de
// Supabase (PostgREST). Es el transporte de respaldo cuando la conexión
// directa a Postgres falla por red o DNS.
type LeadRepository struct {
	http *resty.Client
}

func NewLeadRepository(baseURL, serviceKey string) *LeadRepository {
	client := resty.New().
		SetBaseURL(baseURL+"/rest/v1").
		SetTimeout(10*time.Second).
		SetHeader("apikey", serviceKey).
		SetHeader("Authorization", "Bearer "+serviceKey).
		SetHeader("Content-Type", "application/json")

	return &LeadRepository{http: client}
}

// insertField: misma idea que las columnas del INSERT directo; las opcionales
// se descartan si PostgREST reporta que la columna no existe en este entorno.
type insertField struct {
	name     string
	value    any
	required bool
}

func insertFields(lead *entity.Lead) []insertField {
	return []insertField{
		{"full_name", lead.FullName, true},
		{"email", lead.Email, true},
		{"phone", lead.Phone, true},
		{"calendly_status", lead.CalendlyStatus, true},
		{"budget", lead.Budget, false},
		{"down_payment", lead.DownPayment, false},
		{"what_in_mind", lead.WhatInMind, false},
		{"project_slug", lead.ProjectSlug, false},
	}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	fields := insertFields(lead)
	dropped := map[string]bool{}

	maxRetries := 0
	for _, f := range fields {
		if !f.required {
			maxRetries++
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		payload := map[string]any{}
		for _, f := range fields {
			if !dropped[f.name] {
				payload[f.name] = f.value
			}
		}

		var rows []leadRecord
		resp, err := r.http.R().
			SetContext(ctx).
			SetHeader("Prefer", "return=representation").
			SetBody(payload).
			SetResult(&rows).
			Post("/leads")
		if err != nil {
			return fmt.Errorf("falla llamando a Supabase REST: %w", err)
		}

		if resp.IsSuccess() {
			if len(rows) == 0 {
				return fmt.Errorf("supabase REST no devolvió el lead insertado")
			}
			saved := rows[0].toEntity()
			*lead = saved
			return nil
		}

		lastErr = restError(resp)
		column, ok := missingRestColumn(resp.Body())
		if !ok || dropped[column] || !isOptionalField(fields, column) {
			return lastErr
		}

		log.Printf("⚠️ Supabase REST: la columna %s no existe en este entorno, reintentando sin ella", column)
		dropped[column] = true
	}

	return lastErr
}

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	var rows []leadRecord
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc,id.desc").
		SetResult(&rows).
		Get("/leads")
	if err != nil {
		return nil, fmt.Errorf("falla llamando a Supabase REST: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, restError(resp)
	}

	leads := make([]entity.Lead, len(rows))
	for i, row := range rows {
		leads[i] = row.toEntity()
	}
	return leads, nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	row, err := r.latestByEmail(ctx, email)
	if err != nil || row == nil {
		return nil, err
	}
	lead := row.toEntity()
	return &lead, nil
}

func (r *LeadRepository) UpdateScheduling(ctx context.Context, email string, update entity.SchedulingUpdate) (*entity.Lead, error) {
	// PostgREST no soporta el sub-select "el más reciente", así que el match
	// se resuelve en dos pasos: buscar el id y luego PATCH por id. El lead que
	// ya guarda este event id tiene prioridad sobre el más reciente por email,
	// igual que en el UPDATE directo contra Postgres.
	current, err := r.byEventID(ctx, update.EventID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current, err = r.latestByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}
	if current == nil {
		return nil, nil
	}

	payload := map[string]any{
		"appointment_date":      update.AppointmentDate,
		"calendly_event_id":     emptyToNil(update.EventID),
		"calendly_status":       update.Status,
		"calendly_invitee_name": emptyToNil(update.InviteeName),
		"calendly_raw_payload":  json.RawMessage(update.RawPayload),
	}

	var rows []leadRecord
	resp, err := r.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", fmt.Sprintf("eq.%d", current.ID)).
		SetBody(payload).
		SetResult(&rows).
		Patch("/leads")
	if err != nil {
		return nil, fmt.Errorf("falla llamando a Supabase REST: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, restError(resp)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	lead := rows[0].toEntity()
	return &lead, nil
}

func (r *LeadRepository) byEventID(ctx context.Context, eventID string) (*leadRecord, error) {
	if eventID == "" {
		return nil, nil
	}

	var rows []leadRecord
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("calendly_event_id", "eq."+eventID).
		SetQueryParam("limit", "1").
		SetResult(&rows).
		Get("/leads")
	if err != nil {
		return nil, fmt.Errorf("falla llamando a Supabase REST: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, restError(resp)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *LeadRepository) latestByEmail(ctx context.Context, email string) (*leadRecord, error) {
	var rows []leadRecord
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("email", caseInsensitiveEq(email)).
		SetQueryParam("order", "created_at.desc,id.desc").
		SetQueryParam("limit", "1").
		SetResult(&rows).
		Get("/leads")
	if err != nil {
		return nil, fmt.Errorf("falla llamando a Supabase REST: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, restError(resp)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// PostgREST reporta la columna faltante como PGRST204:
//
//	{"code":"PGRST204","message":"Could not find the 'project_slug' column of 'leads' in the schema cache"}
var restColumnRe = regexp.MustCompile(`'([^']+)' column`)

func missingRestColumn(body []byte) (string, bool) {
	var perr postgrestError
	if err := json.Unmarshal(body, &perr); err != nil || perr.Code != "PGRST204" {
		return "", false
	}

	match := restColumnRe.FindStringSubmatch(perr.Message)
	if len(match) < 2 {
		return "", false
	}
	return match[1], true
}

func isOptionalField(fields []insertField, name string) bool {
	for _, f := range fields {
		if f.name == name {
			return !f.required
		}
	}
	return false
}

func restError(resp *resty.Response) error {
	var perr postgrestError
	if err := json.Unmarshal(resp.Body(), &perr); err == nil && perr.Message != "" {
		return fmt.Errorf("supabase REST rechazó la operación (status %d, code %s): %s",
			resp.StatusCode(), perr.Code, perr.Message)
	}
	return fmt.Errorf("supabase REST rechazó la operación (status %d)", resp.StatusCode())
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// caseInsensitiveEq arma un filtro de igualdad exacta sin distinguir
// mayúsculas. Con ilike los caracteres % y * del valor actuarían como
// comodines, así que el match va como regex anclado con el email escapado.
func caseInsensitiveEq(value string) string {
	return "imatch.^" + regexp.QuoteMeta(value) + "$"
}
