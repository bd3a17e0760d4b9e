package postgres

import (
	"context"

	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/postgres"
)

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, email, password_hash, is_verified, verification_token, reset_password_token,
	reset_password_expires, business_info, document_customization, created_at, updated_at, created_by, updated_by`

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (` + userColumns + `) VALUES (
			:id, :email, :password_hash, :is_verified, :verification_token, :reset_password_token,
			:reset_password_expires, :business_info, :document_customization, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating user", "user_id", u.ID)

	_, err := r.db.NamedExecContext(ctx, query, u)
	return translate(err, "user", map[string]any{"email": u.Email})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getBy(ctx, "id = ?", id, map[string]any{"user_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "LOWER(email) = LOWER(?)", email, map[string]any{"email": email})
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*user.User, error) {
	return r.getBy(ctx, "verification_token = ?", token, nil)
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*user.User, error) {
	return r.getBy(ctx, "reset_password_token = ?", token, nil)
}

func (r *userRepository) getBy(ctx context.Context, cond string, arg interface{}, details map[string]any) (*user.User, error) {
	var u user.User
	if err := r.db.GetContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE "+cond, arg); err != nil {
		return nil, translate(err, "user", details)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			email = :email,
			password_hash = :password_hash,
			is_verified = :is_verified,
			verification_token = :verification_token,
			reset_password_token = :reset_password_token,
			reset_password_expires = :reset_password_expires,
			business_info = :business_info,
			document_customization = :document_customization,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating user", "user_id", u.ID)

	result, err := r.db.NamedExecContext(ctx, query, u)
	if err != nil {
		return translate(err, "user", map[string]any{"user_id": u.ID})
	}
	return requireAffected(result, "user", u.ID)
}
