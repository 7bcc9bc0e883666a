package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
)

// UserRepo reads users. User management itself lives outside this service.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Get(ctx context.Context, id string) (model.User, error) {
	return r.scanOne(ctx, `
		SELECT id::text, first_name, last_name, email, role, profile
		FROM users WHERE id = $1
	`, id)
}

func (r *UserRepo) FindByRole(ctx context.Context, role model.Role) (model.User, error) {
	return r.scanOne(ctx, `
		SELECT id::text, first_name, last_name, email, role, profile
		FROM users WHERE role = $1
		ORDER BY created_at, id
		LIMIT 1
	`, string(role))
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (model.User, error) {
	var (
		u       model.User
		role    string
		profile []byte
	)
	err := r.pool.QueryRow(ctx, query, args...).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &role, &profile)
	if err != nil {
		return u, mapError(err)
	}
	u.Role = model.Role(role)
	if err := decodeProfile(&u, profile); err != nil {
		return u, fmt.Errorf("decoding profile of user %s: %w", u.ID, err)
	}
	return u, nil
}

// decodeProfile fills the role-specific extension selected by u.Role.
func decodeProfile(u *model.User, raw []byte) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	switch u.Role {
	case model.RoleAssociate:
		u.Associate = &model.AssociateProfile{}
		return json.Unmarshal(raw, u.Associate)
	case model.RoleSubAdmin:
		u.SubAdmin = &model.SubAdminProfile{}
		return json.Unmarshal(raw, u.SubAdmin)
	}
	return nil
}
