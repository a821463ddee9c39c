package authsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"elibrary/model"
	adminrepo "elibrary/repository/admin"
	userrepo "elibrary/repository/user"
	"elibrary/util/hash"
)

type mockUserRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*model.User, error)
	createFn     func(ctx context.Context, u *model.User) error
	listFn       func(ctx context.Context) ([]model.User, error)
}

var _ userrepo.Repo = (*mockUserRepo)(nil)

func (m *mockUserRepo) ByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.byUsernameFn == nil {
		return nil, nil
	}
	return m.byUsernameFn(ctx, username)
}

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return nil
}

type mockAdminRepo struct {
	byUsernameFn func(ctx context.Context, username string) (*model.Admin, error)
}

var _ adminrepo.Repo = (*mockAdminRepo)(nil)

func (m *mockAdminRepo) ByUsername(ctx context.Context, username string) (*model.Admin, error) {
	if m.byUsernameFn == nil {
		return nil, nil
	}
	return m.byUsernameFn(ctx, username)
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	var stored *model.User
	m := &mockUserRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			stored = u
			return nil
		},
	}
	svc := New(m, &mockAdminRepo{}, "test-secret")

	u, tok, err := svc.Register(ctx, model.RegisterReq{
		Username: "halim",
		Email:    "user@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, "halim", u.Username)
	require.Equal(t, "user@example.com", u.Email)
	require.NotEmpty(t, u.CreatedAt)
	require.NotNil(t, stored)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.True(t, hash.Check(stored.PasswordHash, "supersecret"))
}

func TestRegister_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockUserRepo{}, &mockAdminRepo{}, "test-secret")

	for _, req := range []model.RegisterReq{
		{Username: " ", Email: "a@b.c", Password: "123456"},
		{Username: "u", Email: "", Password: "123456"},
		{Username: "u", Email: "a@b.c", Password: ""},
	} {
		_, _, err := svc.Register(ctx, req)
		require.ErrorIs(t, err, ErrBadInput)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockUserRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{Username: username}, nil
		},
	}
	svc := New(m, &mockAdminRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "taken",
		Email:    "taken@example.com",
		Password: "123456",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_TakenLeavesTableAlone(t *testing.T) {
	ctx := context.Background()
	created := 0
	m := &mockUserRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{Username: username}, nil
		},
		createFn: func(ctx context.Context, u *model.User) error {
			created++
			return nil
		},
	}
	svc := New(m, &mockAdminRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "taken", Email: "x@y.z", Password: "123456",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.Zero(t, created)
}

func TestRegister_CreateError(t *testing.T) {
	ctx := context.Background()
	m := &mockUserRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, &mockAdminRepo{}, "test-secret")

	_, _, err := svc.Register(ctx, model.RegisterReq{
		Username: "ok", Email: "ok@example.com", Password: "123456",
	})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockUserRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{
				Username:     "halim",
				Email:        "user@example.com",
				PasswordHash: hashed,
			}, nil
		},
	}
	svc := New(m, &mockAdminRepo{}, "test-secret")

	u, tok, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: pw})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotEmpty(t, tok)
	require.Equal(t, "halim", u.Username)
}

func TestLogin_UserNotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockUserRepo{}, &mockAdminRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Username: "missing", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "correct-password")

	m := &mockUserRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{Username: "halim", PasswordHash: hashed}, nil
		},
	}
	svc := New(m, &mockAdminRepo{}, "test-secret")

	_, _, err := svc.Login(ctx, model.LoginReq{Username: "halim", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "right")

	known := &mockUserRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "halim" {
				return &model.User{Username: "halim", PasswordHash: hashed}, nil
			}
			return nil, nil
		},
	}
	svc := New(known, &mockAdminRepo{}, "test-secret")

	_, _, errUnknown := svc.Login(ctx, model.LoginReq{Username: "ghost", Password: "right"})
	_, _, errWrongPw := svc.Login(ctx, model.LoginReq{Username: "halim", Password: "wrong"})
	require.Equal(t, errUnknown, errWrongPw)
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	hashed := mustHash(t, "root-pw")

	a := &mockAdminRepo{
		byUsernameFn: func(ctx context.Context, username string) (*model.Admin, error) {
			if username == "admin" {
				return &model.Admin{Username: "admin", PasswordHash: hashed}, nil
			}
			return nil, nil
		},
	}
	svc := New(&mockUserRepo{}, a, "test-secret")

	tok, err := svc.LoginAdmin(ctx, model.LoginReq{Username: "admin", Password: "root-pw"})
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	_, err = svc.LoginAdmin(ctx, model.LoginReq{Username: "admin", Password: "nope"})
	require.ErrorIs(t, err, ErrInvalidCreds)
}
