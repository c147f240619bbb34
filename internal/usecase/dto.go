package usecase

import (
	"strings"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

// CreateLeadInput: body crudo del POST /api/contacts tal como lo manda el
// formulario del sitio. Todos los opcionales llegan como string (posiblemente
// vacío); la normalización decide qué se guarda como NULL.
type CreateLeadInput struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Budget      string `json:"budget"`
	DownPayment string `json:"downPayment"`
	WhatInMind  string `json:"whatInMind"`
	ProjectSlug string `json:"projectSlug"`
}

// toLead normaliza el input ya validado: recorta todo, y los opcionales
// vacíos quedan en nil (no string vacío) para que la capa de persistencia
// distinga "no enviado" de "enviado en blanco".
func (in CreateLeadInput) toLead() *entity.Lead {
	return &entity.Lead{
		FullName:       strings.TrimSpace(in.FullName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Budget:         optionalString(in.Budget),
		DownPayment:    optionalString(in.DownPayment),
		WhatInMind:     optionalString(in.WhatInMind),
		ProjectSlug:    optionalString(in.ProjectSlug),
		CalendlyStatus: entity.SchedulingPending,
	}
}

func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
