package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/gabbers81/realtor-dario-velez-sub000/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

const projectSelect = `
	SELECT id, slug, title, description, price, location, completion_date,
	       features, images, brochure_url
	FROM projects
`

func (r *ProjectRepository) FindAll(ctx context.Context) ([]entity.Project, error) {
	rows, err := r.DB.QueryContext(ctx, projectSelect+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []entity.Project{}
	for rows.Next() {
		var p entity.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*entity.Project, error) {
	var p entity.Project
	err := scanProject(r.DB.QueryRowContext(ctx, projectSelect+" WHERE slug = $1", slug), &p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProject(row rowScanner, p *entity.Project) error {
	return row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Location,
		&p.CompletionDate,
		pq.Array(&p.Features),
		pq.Array(&p.Images),
		&p.BrochureURL,
	)
}
