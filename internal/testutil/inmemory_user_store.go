package testutil

import (
	"context"

	"github.com/paperstack/paperstack/internal/domain/user"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
)

var _ user.Repository = (*InMemoryUserStore)(nil)

type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	c := *u
	return &c
}

func userNotFound() error {
	return ierr.NewError("user not found").
		WithHint("User not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	email := types.NormalizeEmail(u.Email)
	if _, ok := s.Find(func(existing *user.User) bool { return existing.Email == email }); ok {
		return ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, userNotFound()
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = types.NormalizeEmail(email)
	return s.findBy(func(u *user.User) bool { return u.Email == email })
}

func (s *InMemoryUserStore) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	return s.findBy(func(u *user.User) bool {
		return u.VerificationToken != nil && *u.VerificationToken == token
	})
}

func (s *InMemoryUserStore) GetByResetToken(ctx context.Context, token string) (*user.User, error) {
	return s.findBy(func(u *user.User) bool {
		return u.ResetPasswordToken != nil && *u.ResetPasswordToken == token
	})
}

func (s *InMemoryUserStore) Update(ctx context.Context, u *user.User) error {
	return s.InMemoryStore.Update(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) findBy(match func(*user.User) bool) (*user.User, error) {
	u, ok := s.Find(match)
	if !ok {
		return nil, userNotFound()
	}
	return copyUser(u), nil
}
