package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

type ProjectHandler struct {
	Repo entity.ProjectRepositoryInterface
}

func NewProjectHandler(repo entity.ProjectRepositoryInterface) *ProjectHandler {
	return &ProjectHandler{Repo: repo}
}

// HandleList: GET /api/projects
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Repo.FindAll(r.Context())
	if err != nil {
		log.Printf("❌ Error listando proyectos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "No se pudieron leer los proyectos",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

// HandleGetBySlug: GET /api/projects/{slug}
func (h *ProjectHandler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.Repo.FindBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("❌ Error buscando proyecto %s: %v", slug, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "No se pudo leer el proyecto",
			"error":   err.Error(),
		})
		return
	}
	if project == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Proyecto no encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, project)
}
