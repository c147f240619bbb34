package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/usecase"
)

func schedulingEvent(eventType string) usecase.SchedulingEvent {
	start := time.Date(2026, 4, 2, 14, 30, 0, 0, time.UTC)
	return usecase.SchedulingEvent{
		Type:         eventType,
		InviteeEmail: "Ana@Example.com",
		InviteeName:  "Ana Pérez",
		EventID:      "evt_1",
		StartTime:    &start,
		RawPayload:   json.RawMessage(`{"event":"` + eventType + `"}`),
	}
}

func TestReconcileEventTypeMapping(t *testing.T) {
	cases := []struct {
		eventType string
		status    string
	}{
		{"invitee.created", entity.SchedulingScheduled},
		{"invitee.canceled", entity.SchedulingCancelled},
		{"invitee.cancelled", entity.SchedulingCancelled},
		{"invitee.updated", entity.SchedulingRescheduled},
		{"invitee.rescheduled", entity.SchedulingRescheduled},
	}

	for _, tc := range cases {
		t.Run(tc.eventType, func(t *testing.T) {
			mockRepo := new(MockLeadRepository)
			mockRepo.On("UpdateScheduling", mock.Anything, "ana@example.com", mock.Anything).
				Return(&entity.Lead{ID: 1, CalendlyStatus: tc.status}, nil)

			uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
			outcome := uc.Execute(context.Background(), schedulingEvent(tc.eventType))

			assert.Equal(t, usecase.OutcomeUpdated, outcome)

			// El email del invitado llega en minúsculas al repositorio
			update := mockRepo.Calls[0].Arguments.Get(2).(entity.SchedulingUpdate)
			assert.Equal(t, tc.status, update.Status)
			assert.Equal(t, "evt_1", update.EventID)
			assert.Equal(t, "Ana Pérez", update.InviteeName)
			assert.NotNil(t, update.AppointmentDate)
		})
	}
}

func TestReconcileUnknownEventTypeIgnored(t *testing.T) {
	mockRepo := new(MockLeadRepository)

	uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
	outcome := uc.Execute(context.Background(), schedulingEvent("routing_form_submission.created"))

	assert.Equal(t, usecase.OutcomeIgnored, outcome)
	mockRepo.AssertNotCalled(t, "UpdateScheduling", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileIncompletePayloadSkipped(t *testing.T) {
	t.Run("Missing Email", func(t *testing.T) {
		mockRepo := new(MockLeadRepository)
		event := schedulingEvent("invitee.created")
		event.InviteeEmail = ""

		uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
		outcome := uc.Execute(context.Background(), event)

		assert.Equal(t, usecase.OutcomeSkipped, outcome)
		mockRepo.AssertNotCalled(t, "UpdateScheduling", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Event ID", func(t *testing.T) {
		mockRepo := new(MockLeadRepository)
		event := schedulingEvent("invitee.created")
		event.EventID = ""

		uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
		outcome := uc.Execute(context.Background(), event)

		assert.Equal(t, usecase.OutcomeSkipped, outcome)
		mockRepo.AssertNotCalled(t, "UpdateScheduling", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReconcileNoMatchingLead(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdateScheduling", mock.Anything, "ana@example.com", mock.Anything).Return(nil, nil)

	uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
	outcome := uc.Execute(context.Background(), schedulingEvent("invitee.created"))

	// Un webhook sin lead es un desenlace esperado, no un error
	assert.Equal(t, usecase.OutcomeNoMatch, outcome)
}

func TestReconcileStoreErrorIsSwallowed(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdateScheduling", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("db down"))

	uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
	outcome := uc.Execute(context.Background(), schedulingEvent("invitee.created"))

	assert.Equal(t, usecase.OutcomeStoreError, outcome)
}

func TestReconcileIsIdempotent(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockRepo.On("UpdateScheduling", mock.Anything, "ana@example.com", mock.Anything).
		Return(&entity.Lead{ID: 1, CalendlyStatus: entity.SchedulingScheduled}, nil)

	uc := usecase.NewReconcileAppointmentUseCase(mockRepo)
	event := schedulingEvent("invitee.created")

	first := uc.Execute(context.Background(), event)
	second := uc.Execute(context.Background(), event)

	assert.Equal(t, first, second)

	// El mismo payload dos veces produce exactamente la misma sobrescritura:
	// last-write-wins, sin efectos acumulados
	updateA := mockRepo.Calls[0].Arguments.Get(2).(entity.SchedulingUpdate)
	updateB := mockRepo.Calls[1].Arguments.Get(2).(entity.SchedulingUpdate)
	assert.Equal(t, updateA, updateB)
}
