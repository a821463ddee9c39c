package analyticssvc

import (
	"context"
	"math"
	"sort"

	"elibrary/model"
)

type LoanSource interface {
	ListAll(ctx context.Context) ([]model.Loan, error)
}

type BookSource interface {
	List(ctx context.Context) ([]model.Book, error)
}

// Stats summarizes the transaction set. Mean and std use population
// formulas over per-book borrow counts, matching what the dashboards show.
type Stats struct {
	TotalTransactions int           `json:"total_transactions"`
	ActiveBorrows     int           `json:"active_borrows"`
	MostBorrowedBook  int64         `json:"most_borrowed_book"`
	BorrowFrequency   map[int64]int `json:"borrow_frequency"`
	MeanBorrows       float64       `json:"mean_borrows"`
	StdBorrows        float64       `json:"std_borrows"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
	MonthlyBorrows(ctx context.Context) ([]MonthCount, error)
	CategoryDistribution(ctx context.Context) ([]CategoryCount, error)
}

type service struct {
	loans LoanSource
	books BookSource
}

func New(loans LoanSource, books BookSource) Service {
	return &service{loans: loans, books: books}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	loans, err := s.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{BorrowFrequency: map[int64]int{}}
	st.TotalTransactions = len(loans)
	for _, l := range loans {
		if l.Status == model.LoanBorrowed {
			st.ActiveBorrows++
		}
		st.BorrowFrequency[l.BookID]++
	}

	// Ties on the maximum count go to the lowest book id.
	best := 0
	for id, n := range st.BorrowFrequency {
		if n > best || (n == best && (st.MostBorrowedBook == 0 || id < st.MostBorrowedBook)) {
			best = n
			st.MostBorrowedBook = id
		}
	}

	if len(st.BorrowFrequency) > 0 {
		var sum float64
		for _, n := range st.BorrowFrequency {
			sum += float64(n)
		}
		mean := sum / float64(len(st.BorrowFrequency))

		var sq float64
		for _, n := range st.BorrowFrequency {
			d := float64(n) - mean
			sq += d * d
		}
		st.MeanBorrows = mean
		st.StdBorrows = math.Sqrt(sq / float64(len(st.BorrowFrequency)))
	}

	return st, nil
}

func (s *service) MonthlyBorrows(ctx context.Context) ([]MonthCount, error) {
	loans, err := s.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := map[string]int{}
	for _, l := range loans {
		if len(l.BorrowDate) >= 7 {
			byMonth[l.BorrowDate[:7]]++
		}
	}

	out := make([]MonthCount, 0, len(byMonth))
	for m, n := range byMonth {
		out = append(out, MonthCount{Month: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (s *service) CategoryDistribution(ctx context.Context) ([]CategoryCount, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := map[string]int{}
	for _, b := range books {
		byCategory[b.Category]++
	}

	out := make([]CategoryCount, 0, len(byCategory))
	for c, n := range byCategory {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	// Largest slice first, name as tie-break, so charts render stably.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
