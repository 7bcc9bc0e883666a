package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, manager_id::text FROM projects WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.ManagerID)
	return p, mapError(err)
}
