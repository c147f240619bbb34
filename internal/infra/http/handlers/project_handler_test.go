package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
	"github.com/gabbers81/realtor-dario-velez-sub000/internal/infra/http/handlers"
)

// MockProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindAll(ctx context.Context) ([]entity.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Project), args.Error(1)
}

func (m *MockProjectRepository) FindBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func projectRouter(repo *MockProjectRepository) *chi.Mux {
	handler := handlers.NewProjectHandler(repo)
	r := chi.NewRouter()
	r.Get("/api/projects", handler.HandleList)
	r.Get("/api/projects/{slug}", handler.HandleGetBySlug)
	return r
}

func TestProjectHandlerList(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	mockRepo.On("FindAll", mock.Anything).Return([]entity.Project{
		{ID: 1, Slug: "aura-cap-cana", Title: "Aura Cap Cana"},
		{ID: 2, Slug: "palm-breeze-bavaro", Title: "Palm Breeze Bávaro"},
	}, nil)

	w := httptest.NewRecorder()
	projectRouter(mockRepo).ServeHTTP(w, httptest.NewRequest("GET", "/api/projects", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var projects []entity.Project
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
	assert.Len(t, projects, 2)
}

func TestProjectHandlerGetBySlug(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	mockRepo.On("FindBySlug", mock.Anything, "aura-cap-cana").
		Return(&entity.Project{ID: 1, Slug: "aura-cap-cana", Title: "Aura Cap Cana"}, nil)

	w := httptest.NewRecorder()
	projectRouter(mockRepo).ServeHTTP(w, httptest.NewRequest("GET", "/api/projects/aura-cap-cana", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var project entity.Project
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	assert.Equal(t, "Aura Cap Cana", project.Title)
}

func TestProjectHandlerSlugNotFound(t *testing.T) {
	mockRepo := new(MockProjectRepository)
	mockRepo.On("FindBySlug", mock.Anything, "no-existe").Return(nil, nil)

	w := httptest.NewRecorder()
	projectRouter(mockRepo).ServeHTTP(w, httptest.NewRequest("GET", "/api/projects/no-existe", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
