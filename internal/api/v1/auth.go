package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/api/dto"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/logger"
	"github.com/paperstack/paperstack/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// @Summary Log in or register
// @Description Log in with email and password. Unknown emails register a new account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.AuthRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.Authenticate(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Verify email
// @Tags Auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /auth/verify/{token} [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	resp, err := h.authService.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Forgot password
// @Description Issue a reset token. The response is the same whether or not the account exists.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Email"
// @Success 200 {object} dto.MessageResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.ForgotPassword(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to issue password reset", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Token and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.ResetPassword(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
