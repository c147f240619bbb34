package entity

import "context"

// Project: proyecto inmobiliario publicado en el sitio. Solo lectura desde
// la API; la carga la hace el seeder (cmd/seeder), nunca el usuario final.
type Project struct {
	ID             int64    `json:"id"`
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Price          string   `json:"price"`
	Location       string   `json:"location"`
	CompletionDate string   `json:"completionDate"`
	Features       []string `json:"features"`
	Images         []string `json:"images"`
	BrochureURL    *string  `json:"brochureUrl,omitempty"`
}

type ProjectRepositoryInterface interface {
	FindAll(ctx context.Context) ([]Project, error)

	// FindBySlug devuelve (nil, nil) si el slug no existe.
	FindBySlug(ctx context.Context, slug string) (*Project, error)
}
