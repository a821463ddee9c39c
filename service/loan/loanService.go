package loansvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elibrary/model"
	loanrepo "elibrary/repository/loan"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound     ErrCode = "BOOK_NOT_FOUND"
	ErrBookNotAvailable ErrCode = "BOOK_NOT_AVAILABLE"
	ErrLoanNotFound     ErrCode = "LOAN_NOT_FOUND"
	ErrAlreadyReturned  ErrCode = "ALREADY_RETURNED"
	ErrNotOwner         ErrCode = "NOT_OWNER"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const (
	// LoanPeriodDays is the fixed borrowing window.
	LoanPeriodDays = 14
	// FinePerDay is charged for every whole day past the due date.
	FinePerDay = 5000
)

// FineFor computes the fine owed when a loan due on dueDate (YYYY-MM-DD,
// interpreted as midnight local time) is returned at returnedAt. Partial
// days truncate toward zero; returning on or before the due instant owes
// nothing.
func FineFor(dueDate string, returnedAt time.Time) int64 {
	due, err := time.ParseInLocation(model.DateLayout, dueDate, returnedAt.Location())
	if err != nil {
		return 0
	}
	if !returnedAt.After(due) {
		return 0
	}
	daysLate := int64(returnedAt.Sub(due) / (24 * time.Hour))
	return daysLate * FinePerDay
}

// OverdueRow is a borrowed loan past its due date, with the fine it would
// accrue if returned now.
type OverdueRow struct {
	model.Loan
	DaysLate      int64 `json:"days_late"`
	ProjectedFine int64 `json:"projected_fine"`
}

type Repo interface {
	GetBookForUpdate(ctx context.Context, tx *sql.Tx, bookID int64) (title string, available bool, err error)
	MarkBookBorrowed(ctx context.Context, tx *sql.Tx, bookID int64) error
	NextLoanID(ctx context.Context, tx *sql.Tx) (int64, error)
	InsertLoan(ctx context.Context, tx *sql.Tx, l *model.Loan) error

	GetLoanForUpdate(ctx context.Context, tx *sql.Tx, loanID int64) (*model.Loan, error)
	MarkBookAvailable(ctx context.Context, tx *sql.Tx, bookID int64) error
	MarkLoanReturned(ctx context.Context, tx *sql.Tx, loanID int64, returnDate string, fine int64) error

	ListByUser(ctx context.Context, username string) ([]model.Loan, error)
	ListActive(ctx context.Context) ([]model.Loan, error)
	ListOverdue(ctx context.Context, today string) ([]model.Loan, error)
	ListAll(ctx context.Context) ([]model.Loan, error)
}

type Service interface {
	// Borrow: mark the book unavailable and create the loan record, both in
	// one transaction. Returns the stored loan with its due date.
	Borrow(ctx context.Context, username string, bookID int64) (*model.Loan, error)

	// Return: free the book and close the loan, computing the fine. Admins
	// may return any loan; users only their own.
	Return(ctx context.Context, username string, isAdmin bool, loanID int64) (*model.Loan, error)

	// History: all loans for a user, newest first.
	History(ctx context.Context, username string) ([]model.Loan, error)

	// Active: all currently-borrowed loans.
	Active(ctx context.Context) ([]model.Loan, error)

	// Overdue: borrowed loans past due, with days late and projected fine.
	Overdue(ctx context.Context) ([]OverdueRow, error)
}

// ----- Service implementation -----

type service struct {
	db  *sql.DB
	r   Repo
	now func() time.Time
}

func New(db *sql.DB, r loanrepo.Repo) Service {
	return &service{db: db, r: r, now: time.Now}
}

// NewWithClock pins the service clock; used by tests and nothing else.
func NewWithClock(db *sql.DB, r Repo, now func() time.Time) Service {
	return &service{db: db, r: r, now: now}
}

func (s *service) Borrow(ctx context.Context, username string, bookID int64) (*model.Loan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	title, available, err := s.r.GetBookForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = makeErr(ErrBookNotFound)
		}
		return nil, err
	}
	if !available {
		err = makeErr(ErrBookNotAvailable)
		return nil, err
	}

	if err = s.r.MarkBookBorrowed(ctx, tx, bookID); err != nil {
		return nil, err
	}

	id, err := s.r.NextLoanID(ctx, tx)
	if err != nil {
		return nil, err
	}

	borrowedAt := s.now()
	loan := &model.Loan{
		ID:         id,
		Username:   username,
		BookID:     bookID,
		BookTitle:  title,
		BorrowDate: borrowedAt.Format(model.DateLayout),
		DueDate:    borrowedAt.AddDate(0, 0, LoanPeriodDays).Format(model.DateLayout),
		ReturnDate: "",
		Status:     model.LoanBorrowed,
		Fine:       0,
	}
	if err = s.r.InsertLoan(ctx, tx, loan); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *service) Return(ctx context.Context, username string, isAdmin bool, loanID int64) (*model.Loan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	loan, err := s.r.GetLoanForUpdate(ctx, tx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = makeErr(ErrLoanNotFound)
		}
		return nil, err
	}
	if !isAdmin && loan.Username != username {
		err = makeErr(ErrNotOwner)
		return nil, err
	}
	if loan.Status == model.LoanReturned {
		err = makeErr(ErrAlreadyReturned)
		return nil, err
	}

	if err = s.r.MarkBookAvailable(ctx, tx, loan.BookID); err != nil {
		return nil, err
	}

	returnedAt := s.now()
	fine := FineFor(loan.DueDate, returnedAt)
	returnDate := returnedAt.Format(model.DateLayout)
	if err = s.r.MarkLoanReturned(ctx, tx, loanID, returnDate, fine); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	loan.ReturnDate = returnDate
	loan.Status = model.LoanReturned
	loan.Fine = fine
	return loan, nil
}

func (s *service) History(ctx context.Context, username string) ([]model.Loan, error) {
	return s.r.ListByUser(ctx, username)
}

func (s *service) Active(ctx context.Context) ([]model.Loan, error) {
	return s.r.ListActive(ctx)
}

func (s *service) Overdue(ctx context.Context) ([]OverdueRow, error) {
	now := s.now()
	loans, err := s.r.ListOverdue(ctx, now.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}
	out := make([]OverdueRow, 0, len(loans))
	for _, l := range loans {
		fine := FineFor(l.DueDate, now)
		out = append(out, OverdueRow{
			Loan:          l,
			DaysLate:      fine / FinePerDay,
			ProjectedFine: fine,
		})
	}
	return out, nil
}
