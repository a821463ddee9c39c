package userrepo

import (
	"context"
	"database/sql"

	"elibrary/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users(username, password_hash, email, created_at)
		VALUES (?,?,?,?)`,
		u.Username, u.PasswordHash, u.Email, u.CreatedAt,
	)
	return err
}

// ByUsername returns (nil, nil) when the user does not exist.
func (r *repo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRowContext(ctx, `
        SELECT username, password_hash, email, created_at
        FROM users
        WHERE username = ?`,
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT username, password_hash, email, created_at
        FROM users
        ORDER BY created_at, username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE users SET password_hash = ? WHERE username = ?`,
		passwordHash, username,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
