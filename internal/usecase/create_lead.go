package usecase

import (
	"context"
	"log"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/queue"
)

type CreateLeadUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Queue queue.QueueProducerInterface // puede ser nil si no hay RabbitMQ configurado
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface, producer queue.QueueProducerInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:  repo,
		Queue: producer,
	}
}

// Execute valida, normaliza y persiste un lead del formulario de contacto.
// Errores posibles: ValidationErrors (nada se escribió) o *PersistenceError.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	lead := input.toLead()

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, &PersistenceError{
			Code:    "LEAD_CREATE_FAILED",
			Message: "no se pudo guardar el contacto",
			Err:     err,
		}
	}

	// La notificación al agente es best-effort: un broker caído nunca debe
	// tumbar el formulario de contacto.
	if uc.Queue != nil {
		payload := queue.NewLeadCapturedPayload(lead)
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("⚠️ No se pudo encolar la notificación del lead %d: %v", lead.ID, err)
		}
	}

	return lead, nil
}
