package adminrepo

import (
	"context"
	"database/sql"

	"elibrary/model"
)

type Repo interface {
	ByUsername(ctx context.Context, username string) (*model.Admin, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// ByUsername returns (nil, nil) when the admin account does not exist.
func (r *repo) ByUsername(ctx context.Context, username string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.db.QueryRowContext(ctx, `
        SELECT username, password_hash, created_at
        FROM admin
        WHERE username = ?`,
		username,
	).Scan(&a.Username, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
