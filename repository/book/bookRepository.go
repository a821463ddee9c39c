package bookrepo

import (
	"context"
	"database/sql"

	"elibrary/model"
)

type Repo interface {
	// Insert assigns the next book_id (max existing + 1, or 1 on an empty
	// catalog) and stores the book. The assigned id is written back to b.
	Insert(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookColumns = `book_id, title, author, year, category, isbn, available, added_date`

func (r *repo) Insert(ctx context.Context, b *model.Book) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(book_id), 0) + 1 FROM books`,
	).Scan(&b.ID); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
        INSERT INTO books(book_id, title, author, year, category, isbn, available, added_date)
        VALUES (?,?,?,?,?,?,?,?)`,
		b.ID, b.Title, b.Author, b.Year, b.Category, b.ISBN, b.Available, b.AddedDate,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	return r.list(ctx, `SELECT `+bookColumns+` FROM books ORDER BY book_id`)
}

func (r *repo) ListAvailable(ctx context.Context) ([]model.Book, error) {
	return r.list(ctx, `SELECT `+bookColumns+` FROM books WHERE available = 1 ORDER BY book_id`)
}

func (r *repo) list(ctx context.Context, q string) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Category, &b.ISBN, &b.Available, &b.AddedDate); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ByID returns (nil, nil) when the book does not exist.
func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := r.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE book_id = ?`, id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Category, &b.ISBN, &b.Available, &b.AddedDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
