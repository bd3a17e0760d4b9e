package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/domain/user"
	"github.com/paperstack/paperstack/internal/email"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/types"
	"github.com/samber/lo"
)

type AuthService interface {
	// Authenticate logs in an existing account or registers a new one
	Authenticate(ctx context.Context, req *dto.AuthRequest) (*dto.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (*dto.MessageResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error)
}

const forgotPasswordMessage = "If an account exists for this email, a reset link has been sent"

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
	}
}

func (s *authService) Authenticate(ctx context.Context, req *dto.AuthRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	if existing != nil {
		return s.login(ctx, existing, req.Password)
	}
	return s.register(ctx, req)
}

func (s *authService) login(ctx context.Context, u *user.User, password string) (*dto.AuthResponse, error) {
	if err := s.AuthProvider.ComparePassword(u.PasswordHash, password); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid credentials").
			Mark(ierr.ErrUnauthorized)
	}

	token, err := s.AuthProvider.GenerateToken(ctx, u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user logged in", "user_id", u.ID)
	return &dto.AuthResponse{Token: token, User: u.Profile()}, nil
}

func (s *authService) register(ctx context.Context, req *dto.AuthRequest) (*dto.AuthResponse, error) {
	if err := s.checkPassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.AuthProvider.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := user.NewUser(ctx, req.Email, hash)
	u.VerificationToken = lo.ToPtr(types.GenerateToken())

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendVerificationEmail(ctx, u)

	token, err := s.AuthProvider.GenerateToken(ctx, u.ID, u.Email)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user registered", "user_id", u.ID)
	return &dto.AuthResponse{Token: token, User: u.Profile(), IsNewUser: true}, nil
}

// sendVerificationEmail is best effort; registration succeeds without it
func (s *authService) sendVerificationEmail(ctx context.Context, u *user.User) {
	if s.Email == nil || !s.Email.IsEnabled() || u.VerificationToken == nil {
		return
	}

	_, err := s.Email.SendEmailWithTemplate(ctx, email.SendEmailWithTemplateRequest{
		ToAddress:    u.Email,
		Subject:      "Verify your email",
		TemplatePath: email.TemplateVerifyEmail,
		Data: map[string]interface{}{
			"user_name":  email.ExtractNameFromEmail(u.Email),
			"verify_url": s.appURL("/v1/auth/verify/" + *u.VerificationToken),
		},
	})
	if err != nil {
		s.Logger.Warnw("failed to send verification email", "user_id", u.ID, "error", err)
	}
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*dto.MessageResponse, error) {
	if token == "" {
		return nil, ierr.NewError("token is required").
			WithHint("Invalid or expired token").
			Mark(ierr.ErrValidation)
	}

	u, err := s.UserRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Invalid or expired token").
				Mark(ierr.ErrValidation)
		}
		return nil, err
	}

	u.IsVerified = true
	u.VerificationToken = nil
	u.UpdatedAt = time.Now().UTC()
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{Message: "Email verified successfully"}, nil
}

// ForgotPassword answers identically whether or not the account exists
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) (*dto.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	response := &dto.MessageResponse{Message: forgotPasswordMessage}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return response, nil
		}
		return nil, err
	}

	u.ResetPasswordToken = lo.ToPtr(types.GenerateToken())
	u.ResetPasswordExpires = lo.ToPtr(time.Now().UTC().Add(s.Config.Auth.ResetTokenTTL))
	u.UpdatedAt = time.Now().UTC()
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.Email != nil && s.Email.IsEnabled() {
		_, err = s.Email.SendEmailWithTemplate(ctx, email.SendEmailWithTemplateRequest{
			ToAddress:    u.Email,
			Subject:      "Password Reset",
			TemplatePath: email.TemplateResetPassword,
			Data: map[string]interface{}{
				"user_name": email.ExtractNameFromEmail(u.Email),
				"reset_url": s.appURL("/reset-password?token=" + *u.ResetPasswordToken),
			},
		})
		if err != nil {
			s.Logger.Errorw("failed to send password reset email", "user_id", u.ID, "error", err)
		}
	}

	return response, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkPassword(req.Password); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalidResetToken()
		}
		return nil, err
	}

	now := time.Now().UTC()
	if u.ResetPasswordExpires == nil || now.After(*u.ResetPasswordExpires) {
		return nil, invalidResetToken()
	}

	hash, err := s.AuthProvider.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u.PasswordHash = hash
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	u.UpdatedAt = now
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return &dto.MessageResponse{Message: "Password reset successful"}, nil
}

func (s *authService) checkPassword(password string) error {
	minimum := s.Config.Auth.PasswordMinimum
	if minimum <= 0 {
		minimum = 6
	}
	if len(password) < minimum {
		return ierr.NewErrorf("password shorter than %d characters", minimum).
			WithHintf("Password must be at least %d characters", minimum).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *authService) appURL(path string) string {
	return fmt.Sprintf("%s%s", strings.TrimRight(s.Config.Email.AppURL, "/"), path)
}

func invalidResetToken() error {
	return ierr.NewError("invalid reset token").
		WithHint("Invalid or expired token").
		Mark(ierr.ErrValidation)
}
