package catalogsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"elibrary/model"
)

type Repo interface {
	Insert(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Book, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	// Add stores a new book. Availability and added_date are always set
	// server-side, whatever the caller supplied.
	Add(ctx context.Context, title, author string, year int, category, isbn string) (*model.Book, error)
	List(ctx context.Context, availableOnly bool) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

var ErrNotFound = errors.New("book not found")

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service { return &service{r: r, now: time.Now} }

func (s *service) Add(ctx context.Context, title, author string, year int, category, isbn string) (*model.Book, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" || category == "" {
		return nil, errors.New("invalid payload")
	}
	b := &model.Book{
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		Year:      year,
		Category:  category,
		ISBN:      isbn,
		Available: true,
		AddedDate: s.now().Format(model.DateLayout),
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, availableOnly bool) ([]model.Book, error) {
	if availableOnly {
		return s.r.ListAvailable(ctx)
	}
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}
