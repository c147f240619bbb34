package database

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

func sampleLead() *entity.Lead {
	budget := "US$150,000"
	slug := "aura-cap-cana"
	return &entity.Lead{
		FullName:       "Ana Pérez",
		Email:          "ana@example.com",
		Phone:          "8291234567",
		Budget:         &budget,
		ProjectSlug:    &slug,
		CalendlyStatus: entity.SchedulingPending,
	}
}

func TestBuildInsertFullColumnSet(t *testing.T) {
	cols := insertColumns(sampleLead())

	query, args := buildInsert(cols, map[string]bool{})

	assert.Equal(t,
		"INSERT INTO leads (full_name, email, phone, calendly_status, budget, down_payment, what_in_mind, project_slug) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at",
		query)
	assert.Len(t, args, 8)
	assert.Equal(t, "Ana Pérez", args[0])
}

func TestBuildInsertSkipsDroppedColumns(t *testing.T) {
	cols := insertColumns(sampleLead())

	query, args := buildInsert(cols, map[string]bool{"project_slug": true, "what_in_mind": true})

	// Los placeholders se renumeran sin huecos
	assert.Equal(t,
		"INSERT INTO leads (full_name, email, phone, calendly_status, budget, down_payment) "+
			"VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		query)
	assert.Len(t, args, 6)
}

func TestMissingColumnClassification(t *testing.T) {
	t.Run("Undefined Column Error", func(t *testing.T) {
		err := &pq.Error{
			Code:    "42703",
			Message: `column "project_slug" of relation "leads" does not exist`,
		}

		column, ok := missingColumn(err)
		assert.True(t, ok)
		assert.Equal(t, "project_slug", column)
	})

	t.Run("Other Postgres Error", func(t *testing.T) {
		err := &pq.Error{
			Code:    "23505",
			Message: `duplicate key value violates unique constraint "leads_calendly_event_id_key"`,
		}

		_, ok := missingColumn(err)
		assert.False(t, ok)
	})

	t.Run("Non Postgres Error", func(t *testing.T) {
		_, ok := missingColumn(errors.New("connection refused"))
		assert.False(t, ok)
	})

	t.Run("42703 Without Column Name", func(t *testing.T) {
		_, ok := missingColumn(&pq.Error{Code: "42703", Message: "something odd"})
		assert.False(t, ok)
	})
}

func TestIsOptionalProtectsRequiredColumns(t *testing.T) {
	cols := insertColumns(sampleLead())

	// Aunque la base reportara una requerida como faltante, jamás se descarta
	assert.False(t, isOptional(cols, "email"))
	assert.False(t, isOptional(cols, "full_name"))
	assert.False(t, isOptional(cols, "no_such_column"))

	assert.True(t, isOptional(cols, "budget"))
	assert.True(t, isOptional(cols, "down_payment"))
	assert.True(t, isOptional(cols, "what_in_mind"))
	assert.True(t, isOptional(cols, "project_slug"))
}

func TestRawPayloadBindsAsText(t *testing.T) {
	t.Run("Payload Presente", func(t *testing.T) {
		value := rawPayloadValue(json.RawMessage(`{"event":"invitee.created"}`))

		// Como []byte el driver lo mandaría en formato bytea y la columna
		// jsonb lo rechazaría con "invalid input syntax for type json"
		text, isString := value.(string)
		assert.True(t, isString)
		assert.Equal(t, `{"event":"invitee.created"}`, text)
	})

	t.Run("Payload Vacío Va Como NULL", func(t *testing.T) {
		assert.Nil(t, rawPayloadValue(nil))
		assert.Nil(t, rawPayloadValue(json.RawMessage{}))
	})
}

func TestClearDroppedFieldsReflectsStoredState(t *testing.T) {
	lead := sampleLead()

	clearDroppedFields(lead, map[string]bool{"project_slug": true})

	// El lead devuelto refleja lo que quedó guardado de verdad
	assert.Nil(t, lead.ProjectSlug)
	assert.NotNil(t, lead.Budget)
	assert.Equal(t, "Ana Pérez", lead.FullName)
}
