package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/paperstack/paperstack/internal/auth"
	"github.com/paperstack/paperstack/internal/domain/user"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/repository"
	"github.com/paperstack/paperstack/internal/types"
)

// AddVerifiedUser creates an account that can log in immediately, skipping
// the verification email
func AddVerifiedUser() error {
	email := os.Getenv("USER_EMAIL")
	password := os.Getenv("USER_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("USER_EMAIL and USER_PASSWORD are required")
	}
	if !types.IsValidEmail(email) {
		return fmt.Errorf("invalid email %q", email)
	}

	env, err := newScriptEnv()
	if err != nil {
		return err
	}
	defer env.db.Close()

	ctx := context.Background()
	users := repository.NewUserRepository(env.db, env.log)

	existing, err := users.GetByEmail(ctx, email)
	if err != nil && !ierr.IsNotFound(err) {
		return err
	}
	if existing != nil {
		env.log.Infow("user already exists", "user_id", existing.ID, "email", existing.Email)
		return nil
	}

	hash, err := auth.NewProvider(env.cfg).HashPassword(password)
	if err != nil {
		return err
	}

	u := user.NewUser(ctx, email, hash)
	u.IsVerified = true
	u.BusinessInfo.Name = os.Getenv("BUSINESS_NAME")

	if err := users.Create(ctx, u); err != nil {
		return err
	}

	env.log.Infow("created user", "user_id", u.ID, "email", u.Email)
	return nil
}
