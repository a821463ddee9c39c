package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"elibrary/model"
	"elibrary/util/hash"
)

func TestNew_SeedsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")
	db, err := New(path, "seed-pw")
	require.NoError(t, err)
	defer db.Close()

	var admins, users, books, loans int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM admin`).Scan(&admins))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&books))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&loans))

	require.Equal(t, 1, admins)
	require.Zero(t, users)
	require.Equal(t, 5, books)
	require.Zero(t, loans)

	var hashed string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM admin WHERE username = 'admin'`).Scan(&hashed))
	require.True(t, hash.Check(hashed, "seed-pw"))
	require.False(t, hash.Check(hashed, "wrong"))
}

func TestNew_SeedIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")

	db, err := New(path, "first-pw")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not reseed or touch existing rows.
	db, err = New(path, "second-pw")
	require.NoError(t, err)
	defer db.Close()

	var admins, books int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM admin`).Scan(&admins))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&books))
	require.Equal(t, 1, admins)
	require.Equal(t, 5, books)

	var hashed string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM admin`).Scan(&hashed))
	require.True(t, hash.Check(hashed, "first-pw"))
}

// Writing rows to all four tables and reopening the file must reproduce
// every field exactly.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lib.db")

	db, err := New(path, "pw")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
        INSERT INTO users(username, password_hash, email, created_at)
        VALUES ('alice', 'hash-a', 'alice@example.com', '2024-02-01 09:30:00')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
        INSERT INTO transactions
            (transaction_id, username, book_id, book_title, borrow_date, due_date, return_date, status, fine)
        VALUES (1, 'alice', 3, 'Machine Learning Basics', '2024-02-01', '2024-02-15', '2024-02-20', 'returned', 25000)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(path, "pw")
	require.NoError(t, err)
	defer db.Close()

	var u model.User
	require.NoError(t, db.QueryRowContext(ctx, `
        SELECT username, password_hash, email, created_at FROM users`).
		Scan(&u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt))
	require.Equal(t, model.User{
		Username:     "alice",
		PasswordHash: "hash-a",
		Email:        "alice@example.com",
		CreatedAt:    "2024-02-01 09:30:00",
	}, u)

	var l model.Loan
	require.NoError(t, db.QueryRowContext(ctx, `
        SELECT transaction_id, username, book_id, book_title, borrow_date, due_date, return_date, status, fine
        FROM transactions`).
		Scan(&l.ID, &l.Username, &l.BookID, &l.BookTitle, &l.BorrowDate, &l.DueDate, &l.ReturnDate, &l.Status, &l.Fine))
	require.Equal(t, model.Loan{
		ID:         1,
		Username:   "alice",
		BookID:     3,
		BookTitle:  "Machine Learning Basics",
		BorrowDate: "2024-02-01",
		DueDate:    "2024-02-15",
		ReturnDate: "2024-02-20",
		Status:     model.LoanReturned,
		Fine:       25000,
	}, l)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count))
	require.Equal(t, 5, count)
}
