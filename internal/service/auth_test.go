package service

import (
	"strings"
	"testing"
	"time"

	"github.com/paperstack/paperstack/internal/api/dto"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewAuthService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *AuthServiceSuite) register(email, password string) *dto.AuthResponse {
	resp, err := s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: email, Password: password})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceSuite) TestAuthenticateRegistersNewUser() {
	resp := s.register("Jane.Doe@Example.com", "secret123")
	s.True(resp.IsNewUser)
	s.NotEmpty(resp.Token)
	s.Equal("jane.doe@example.com", resp.User.Email)
	s.False(resp.User.IsVerified)

	claims, err := s.GetAuthProvider().ValidateToken(s.GetContext(), resp.Token)
	s.NoError(err)
	s.Equal(resp.User.ID, claims.UserID)

	messages := s.GetEmailSender().Messages()
	s.Require().Len(messages, 1)
	s.Equal("jane.doe@example.com", messages[0].To)
	s.Contains(messages[0].HTML, "http://localhost:3000/v1/auth/verify/")
}

func (s *AuthServiceSuite) TestAuthenticateLogsInExistingUser() {
	registered := s.register("jane@example.com", "secret123")

	resp, err := s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: "JANE@example.com", Password: "secret123"})
	s.NoError(err)
	s.False(resp.IsNewUser)
	s.Equal(registered.User.ID, resp.User.ID)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestAuthenticateRejectsWrongPassword() {
	s.register("jane@example.com", "secret123")

	_, err := s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: "jane@example.com", Password: "wrong-password"})
	s.True(ierr.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestAuthenticateValidation() {
	_, err := s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: "not-an-email", Password: "secret123"})
	s.True(ierr.IsValidation(err))

	_, err = s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: "jane@example.com", Password: "abc"})
	s.True(ierr.IsValidation(err))
	s.Zero(s.GetStores().UserRepo.(*testutil.InMemoryUserStore).Len())
}

func (s *AuthServiceSuite) TestRegistrationSucceedsWhenEmailFails() {
	s.GetEmailSender().FailWith(ierr.NewError("smtp down").Mark(ierr.ErrHTTPClient))

	resp := s.register("jane@example.com", "secret123")
	s.True(resp.IsNewUser)
}

func (s *AuthServiceSuite) TestVerifyEmail() {
	resp := s.register("jane@example.com", "secret123")

	stored, err := s.GetStores().UserRepo.GetByID(s.GetContext(), resp.User.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.VerificationToken)

	msg, err := s.service.VerifyEmail(s.GetContext(), *stored.VerificationToken)
	s.NoError(err)
	s.Equal("Email verified successfully", msg.Message)

	stored, err = s.GetStores().UserRepo.GetByID(s.GetContext(), resp.User.ID)
	s.NoError(err)
	s.True(stored.IsVerified)
	s.Nil(stored.VerificationToken)

	_, err = s.service.VerifyEmail(s.GetContext(), "unknown-token")
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestForgotPasswordDoesNotRevealAccounts() {
	s.register("jane@example.com", "secret123")
	s.GetEmailSender().Clear()

	known, err := s.service.ForgotPassword(s.GetContext(), &dto.ForgotPasswordRequest{Email: "jane@example.com"})
	s.NoError(err)
	unknown, err := s.service.ForgotPassword(s.GetContext(), &dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	s.NoError(err)

	s.Equal(known.Message, unknown.Message)
	s.Len(s.GetEmailSender().Messages(), 1)
}

func (s *AuthServiceSuite) TestResetPassword() {
	resp := s.register("jane@example.com", "secret123")

	_, err := s.service.ForgotPassword(s.GetContext(), &dto.ForgotPasswordRequest{Email: "jane@example.com"})
	s.Require().NoError(err)

	stored, err := s.GetStores().UserRepo.GetByID(s.GetContext(), resp.User.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.ResetPasswordToken)
	token := *stored.ResetPasswordToken

	last := s.GetEmailSender().Messages()
	s.True(strings.Contains(last[len(last)-1].HTML, token))

	_, err = s.service.ResetPassword(s.GetContext(), &dto.ResetPasswordRequest{Token: token, Password: "brand-new-pass"})
	s.NoError(err)

	_, err = s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: "jane@example.com", Password: "secret123"})
	s.True(ierr.IsUnauthorized(err))

	login, err := s.service.Authenticate(s.GetContext(), &dto.AuthRequest{Email: "jane@example.com", Password: "brand-new-pass"})
	s.NoError(err)
	s.False(login.IsNewUser)

	// tokens are single use
	_, err = s.service.ResetPassword(s.GetContext(), &dto.ResetPasswordRequest{Token: token, Password: "another-pass"})
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestResetPasswordRejectsExpiredToken() {
	resp := s.register("jane@example.com", "secret123")

	stored, err := s.GetStores().UserRepo.GetByID(s.GetContext(), resp.User.ID)
	s.Require().NoError(err)
	stored.ResetPasswordToken = lo.ToPtr("expired-token")
	stored.ResetPasswordExpires = lo.ToPtr(time.Now().UTC().Add(-time.Minute))
	s.Require().NoError(s.GetStores().UserRepo.Update(s.GetContext(), stored))

	_, err = s.service.ResetPassword(s.GetContext(), &dto.ResetPasswordRequest{Token: "expired-token", Password: "brand-new-pass"})
	s.True(ierr.IsValidation(err))
	s.Equal("Invalid or expired token", ierr.GetDisplayMessage(err))
}
