package analyticssvc

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"elibrary/model"
)

type loanSourceMock struct{ loans []model.Loan }

func (m *loanSourceMock) ListAll(ctx context.Context) ([]model.Loan, error) {
	return m.loans, nil
}

type bookSourceMock struct{ books []model.Book }

func (m *bookSourceMock) List(ctx context.Context) ([]model.Book, error) {
	return m.books, nil
}

func TestStats_Empty(t *testing.T) {
	svc := New(&loanSourceMock{}, &bookSourceMock{})

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Zero(t, st.TotalTransactions)
	require.Zero(t, st.ActiveBorrows)
	require.Zero(t, st.MostBorrowedBook)
	require.Zero(t, st.MeanBorrows)
	require.Zero(t, st.StdBorrows)
}

func TestStats(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, BookID: 1, Status: model.LoanReturned, BorrowDate: "2024-01-05"},
		{ID: 2, BookID: 1, Status: model.LoanReturned, BorrowDate: "2024-01-20"},
		{ID: 3, BookID: 1, Status: model.LoanBorrowed, BorrowDate: "2024-02-01"},
		{ID: 4, BookID: 2, Status: model.LoanBorrowed, BorrowDate: "2024-02-14"},
	}
	svc := New(&loanSourceMock{loans: loans}, &bookSourceMock{})

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, st.TotalTransactions)
	require.Equal(t, 2, st.ActiveBorrows)
	require.Equal(t, int64(1), st.MostBorrowedBook)
	require.Equal(t, map[int64]int{1: 3, 2: 1}, st.BorrowFrequency)

	// counts {3,1}: population mean 2, std 1
	require.InDelta(t, 2.0, st.MeanBorrows, 1e-9)
	require.InDelta(t, 1.0, st.StdBorrows, 1e-9)
}

func TestStats_TieGoesToLowestBookID(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, BookID: 5, Status: model.LoanReturned},
		{ID: 2, BookID: 2, Status: model.LoanReturned},
		{ID: 3, BookID: 9, Status: model.LoanReturned},
	}
	svc := New(&loanSourceMock{loans: loans}, &bookSourceMock{})

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), st.MostBorrowedBook)
}

func TestStats_PopulationStd(t *testing.T) {
	// counts per book: {4,2} -> mean 3, population std 1 (sample std would be sqrt(2))
	loans := []model.Loan{
		{ID: 1, BookID: 1}, {ID: 2, BookID: 1}, {ID: 3, BookID: 1}, {ID: 4, BookID: 1},
		{ID: 5, BookID: 2}, {ID: 6, BookID: 2},
	}
	svc := New(&loanSourceMock{loans: loans}, &bookSourceMock{})

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 3.0, st.MeanBorrows, 1e-9)
	require.InDelta(t, 1.0, st.StdBorrows, 1e-9)
	require.False(t, math.IsNaN(st.StdBorrows))
}

func TestMonthlyBorrows(t *testing.T) {
	loans := []model.Loan{
		{ID: 1, BorrowDate: "2024-02-10"},
		{ID: 2, BorrowDate: "2024-01-05"},
		{ID: 3, BorrowDate: "2024-02-28"},
	}
	svc := New(&loanSourceMock{loans: loans}, &bookSourceMock{})

	rows, err := svc.MonthlyBorrows(context.Background())
	require.NoError(t, err)
	require.Equal(t, []MonthCount{
		{Month: "2024-01", Count: 1},
		{Month: "2024-02", Count: 2},
	}, rows)
}

func TestCategoryDistribution(t *testing.T) {
	books := []model.Book{
		{ID: 1, Category: "Programming"},
		{ID: 2, Category: "Database"},
		{ID: 3, Category: "Programming"},
	}
	svc := New(&loanSourceMock{}, &bookSourceMock{books: books})

	rows, err := svc.CategoryDistribution(context.Background())
	require.NoError(t, err)
	require.Equal(t, []CategoryCount{
		{Category: "Programming", Count: 2},
		{Category: "Database", Count: 1},
	}, rows)
}
