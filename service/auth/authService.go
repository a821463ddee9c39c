package authsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"elibrary/model"
	adminrepo "elibrary/repository/admin"
	userrepo "elibrary/repository/user"
	"elibrary/util/hash"
	jwtutil "elibrary/util/jwt"
)

var (
	ErrBadInput      = errors.New("bad input")
	ErrInvalidCreds  = errors.New("invalid credentials")
	ErrUsernameTaken = errors.New("username already taken")
)

const tokenTTLHours = 24

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	LoginAdmin(ctx context.Context, req model.LoginReq) (string, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type service struct {
	ur     userrepo.Repo
	ar     adminrepo.Repo
	secret string
}

func New(ur userrepo.Repo, ar adminrepo.Repo, secret string) Service {
	return &service{ur: ur, ar: ar, secret: secret}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}

	existing, err := s.ur.ByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Username:     username,
		PasswordHash: hashed,
		Email:        email,
		CreatedAt:    time.Now().Format(model.TimestampLayout),
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.Username, "user", tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// mapDuplicateErr backstops the pre-insert lookup: two concurrent registers
// can both pass it, and then the primary key constraint decides.
func mapDuplicateErr(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		if se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrUsernameTaken
		}
	}
	return nil
}

// Login deliberately reports the same error for an unknown username and a
// wrong password.
func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, "", ErrBadInput
	}
	u, err := s.ur.ByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, u.Username, "user", tokenTTLHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) LoginAdmin(ctx context.Context, req model.LoginReq) (string, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return "", ErrBadInput
	}
	a, err := s.ar.ByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if a == nil || !hash.Check(a.PasswordHash, req.Password) {
		return "", ErrInvalidCreds
	}
	return jwtutil.Issue(s.secret, a.Username, "admin", tokenTTLHours)
}

func (s *service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}
