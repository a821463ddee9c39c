// repository/loan/loanRepository.go
package loanrepo

import (
	"context"
	"database/sql"

	"elibrary/model"
)

type Repo interface {
	// Borrow workflow (inside caller's tx)
	GetBookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (title string, available bool, err error)
	MarkBookBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) error
	NextLoanID(ctx context.Context, tx *sql.Tx) (int64, error)
	InsertLoan(ctx context.Context, tx *sql.Tx, l *model.Loan) error

	// Return workflow (inside caller's tx)
	GetLoanForUpdate(ctx context.Context, tx *sql.Tx, loanID int64) (*model.Loan, error)
	MarkBookAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error
	MarkLoanReturned(ctx context.Context, tx *sql.Tx, loanID int64, returnDate string, fine int64) error

	// Listings
	ListByUser(ctx context.Context, username string) ([]model.Loan, error)
	ListActive(ctx context.Context) ([]model.Loan, error)
	ListOverdue(ctx context.Context, today string) ([]model.Loan, error)
	ListAll(ctx context.Context) ([]model.Loan, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const loanColumns = `transaction_id, username, book_id, book_title,
        borrow_date, due_date, return_date, status, fine`

// Borrow workflow

func (r *repo) GetBookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (string, bool, error) {
	const q = `
			SELECT title, available
			FROM books
			WHERE book_id = ?`
	var title string
	var available bool
	err := tx.QueryRowContext(ctx, q, bookID).Scan(&title, &available)
	return title, available, err
}

func (r *repo) MarkBookBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
		UPDATE books
		SET available = 0
		WHERE book_id = ?`
	_, err := tx.ExecContext(ctx, q, bookID)
	return err
}

// NextLoanID is max existing + 1, or 1 when there are no transactions.
// Identifiers are never reused; loans are never deleted.
func (r *repo) NextLoanID(ctx context.Context, tx *sql.Tx) (int64, error) {
	const q = `SELECT COALESCE(MAX(transaction_id), 0) + 1 FROM transactions`
	var id int64
	err := tx.QueryRowContext(ctx, q).Scan(&id)
	return id, err
}

func (r *repo) InsertLoan(ctx context.Context, tx *sql.Tx, l *model.Loan) error {
	const q = `
		INSERT INTO transactions
			(transaction_id, username, book_id, book_title, borrow_date, due_date, return_date, status, fine)
		VALUES (?,?,?,?,?,?,?,?,?)`
	_, err := tx.ExecContext(ctx, q,
		l.ID, l.Username, l.BookID, l.BookTitle,
		l.BorrowDate, l.DueDate, l.ReturnDate, l.Status, l.Fine)
	return err
}

// Return workflow

func (r *repo) GetLoanForUpdate(ctx context.Context, tx *sql.Tx, loanID int64) (*model.Loan, error) {
	const q = `
		SELECT ` + loanColumns + `
		FROM transactions
		WHERE transaction_id = ?`
	var l model.Loan
	err := tx.QueryRowContext(ctx, q, loanID).Scan(
		&l.ID, &l.Username, &l.BookID, &l.BookTitle,
		&l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.Fine)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repo) MarkBookAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error {
	const q = `
		UPDATE books
		SET available = 1
		WHERE book_id = ?`
	_, err := tx.ExecContext(ctx, q, bookID)
	return err
}

func (r *repo) MarkLoanReturned(ctx context.Context, tx *sql.Tx, loanID int64, returnDate string, fine int64) error {
	const q = `
		UPDATE transactions
		SET return_date = ?,
			status = ?,
			fine = ?
		WHERE transaction_id = ?`
	_, err := tx.ExecContext(ctx, q, returnDate, model.LoanReturned, fine, loanID)
	return err
}

// Listings

func (r *repo) ListByUser(ctx context.Context, username string) ([]model.Loan, error) {
	const q = `
			SELECT ` + loanColumns + `
			FROM transactions
			WHERE username = ?
			ORDER BY transaction_id DESC`
	return r.list(ctx, q, username)
}

func (r *repo) ListActive(ctx context.Context) ([]model.Loan, error) {
	const q = `
			SELECT ` + loanColumns + `
			FROM transactions
			WHERE status = 'borrowed'
			ORDER BY transaction_id`
	return r.list(ctx, q)
}

// ListOverdue relies on YYYY-MM-DD dates sorting lexicographically.
func (r *repo) ListOverdue(ctx context.Context, today string) ([]model.Loan, error) {
	const q = `
			SELECT ` + loanColumns + `
			FROM transactions
			WHERE status = 'borrowed' AND due_date < ?
			ORDER BY due_date, transaction_id`
	return r.list(ctx, q, today)
}

func (r *repo) ListAll(ctx context.Context) ([]model.Loan, error) {
	const q = `
			SELECT ` + loanColumns + `
			FROM transactions
			ORDER BY transaction_id`
	return r.list(ctx, q)
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Loan, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(
			&l.ID, &l.Username, &l.BookID, &l.BookTitle,
			&l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.Fine,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
