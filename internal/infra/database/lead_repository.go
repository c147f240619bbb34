package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/lib/pq"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// insertColumn: una columna del INSERT. Las opcionales pueden descartarse
// cuando el entorno todavía no corrió la migración que las agrega.
type insertColumn struct {
	name     string
	value    any
	required bool
}

func insertColumns(lead *entity.Lead) []insertColumn {
	return []insertColumn{
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

// Create inserta el lead completo y, si el entorno rechaza una columna
// opcional que aún no existe (drift de esquema entre ambientes), reintenta
// sin exactamente esa columna. Nunca descarta campos requeridos y el número
// de reintentos está acotado por la cantidad de opcionales.
func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	cols := insertColumns(lead)
	dropped := map[string]bool{}

	maxRetries := 0
	for _, c := range cols {
		if !c.required {
			maxRetries++
		}
	}

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		query, args := buildInsert(cols, dropped)

		err = r.DB.QueryRowContext(ctx, query, args...).Scan(&lead.ID, &lead.CreatedAt)
		if err == nil {
			clearDroppedFields(lead, dropped)
			return nil
		}

		column, ok := missingColumn(err)
		if !ok || dropped[column] || !isOptional(cols, column) {
			return err
		}

		log.Printf("⚠️ La columna %s no existe en este entorno, reintentando sin ella", column)
		dropped[column] = true
	}

	return err
}

func buildInsert(cols []insertColumn, dropped map[string]bool) (string, []any) {
	var names []string
	var placeholders []string
	var args []any

	for _, c := range cols {
		if dropped[c.name] {
			continue
		}
		args = append(args, c.value)
		names = append(names, c.name)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		"INSERT INTO leads (%s) VALUES (%s) RETURNING id, created_at",
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)
	return query, args
}

// lib/pq reporta: column "project_slug" of relation "leads" does not exist
var columnNameRe = regexp.MustCompile(`column "([^"]+)"`)

// missingColumn clasifica errores 42703 (undefined_column) y extrae el
// nombre de la columna ofensora.
func missingColumn(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "42703" {
		return "", false
	}

	match := columnNameRe.FindStringSubmatch(pqErr.Message)
	if len(match) < 2 {
		return "", false
	}
	return match[1], true
}

func isOptional(cols []insertColumn, name string) bool {
	for _, c := range cols {
		if c.name == name {
			return !c.required
		}
	}
	return false
}

// El lead devuelto debe reflejar lo que realmente quedó guardado.
func clearDroppedFields(lead *entity.Lead, dropped map[string]bool) {
	if dropped["budget"] {
		lead.Budget = nil
	}
	if dropped["down_payment"] {
		lead.DownPayment = nil
	}
	if dropped["what_in_mind"] {
		lead.WhatInMind = nil
	}
	if dropped["project_slug"] {
		lead.ProjectSlug = nil
	}
}

const leadSelectColumns = `id, full_name, email, phone, budget, down_payment, what_in_mind,
	       project_slug, appointment_date, calendly_event_id, calendly_status,
	       calendly_invitee_name, calendly_raw_payload, created_at`

func (r *LeadRepository) FindAll(ctx context.Context) ([]entity.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM leads ORDER BY created_at DESC, id DESC", leadSelectColumns)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		var lead entity.Lead
		if err := scanLead(rows, &lead); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	// Empate entre leads duplicados: gana el más reciente
	query := fmt.Sprintf(`SELECT %s FROM leads
		WHERE LOWER(email) = LOWER($1)
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, leadSelectColumns)

	var lead entity.Lead
	err := scanLead(r.DB.QueryRowContext(ctx, query, email), &lead)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) UpdateScheduling(ctx context.Context, email string, update entity.SchedulingUpdate) (*entity.Lead, error) {
	// El lead que ya guarda este event id tiene prioridad: una re-entrega del
	// mismo evento debe caer sobre él y no chocar con el UNIQUE de la columna
	// cuando existe otro lead más nuevo con el mismo email.
	query := `
		UPDATE leads SET
			appointment_date = $2,
			calendly_event_id = $3,
			calendly_status = $4,
			calendly_invitee_name = $5,
			calendly_raw_payload = $6
		WHERE id = COALESCE(
			(SELECT id FROM leads WHERE calendly_event_id = $3 LIMIT 1),
			(SELECT id FROM leads
			 WHERE LOWER(email) = LOWER($1)
			 ORDER BY created_at DESC, id DESC
			 LIMIT 1)
		)
		RETURNING id, full_name, email, phone, budget, down_payment, what_in_mind,
		          project_slug, appointment_date, calendly_event_id, calendly_status,
		          calendly_invitee_name, calendly_raw_payload, created_at
	`

	var lead entity.Lead
	err := scanLead(r.DB.QueryRowContext(ctx, query,
		email,
		update.AppointmentDate,
		nullString(update.EventID),
		update.Status,
		nullString(update.InviteeName),
		rawPayloadValue(update.RawPayload),
	), &lead)
	if err == sql.ErrNoRows {
		// Un webhook sin lead correspondiente es un caso esperado
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner, lead *entity.Lead) error {
	var raw []byte
	err := row.Scan(
		&lead.ID,
		&lead.FullName,
		&lead.Email,
		&lead.Phone,
		&lead.Budget,
		&lead.DownPayment,
		&lead.WhatInMind,
		&lead.ProjectSlug,
		&lead.AppointmentDate,
		&lead.CalendlyEventID,
		&lead.CalendlyStatus,
		&lead.CalendlyInviteeName,
		&raw,
		&lead.CreatedAt,
	)
	if err != nil {
		return err
	}
	lead.CalendlyRawPayload = raw
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// rawPayloadValue liga el payload como texto: lib/pq codifica []byte como
// bytea hexadecimal y Postgres rechaza ese literal en una columna jsonb.
func rawPayloadValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
