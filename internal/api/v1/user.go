package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperstack/paperstack/internal/api/dto"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// @Summary Get profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.Profile
// @Failure 401 {object} ierr.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Update business info
// @Description Only the provided fields change
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateBusinessInfoRequest true "Business info"
// @Success 200 {object} user.Profile
// @Failure 400 {object} ierr.ErrorResponse
// @Router /users/business-info [put]
func (h *UserHandler) UpdateBusinessInfo(c *gin.Context) {
	var req dto.UpdateBusinessInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	profile, err := h.userService.UpdateBusinessInfo(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary Update document customization
// @Description Only the provided fields change
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateDocumentCustomizationRequest true "Customization"
// @Success 200 {object} user.Profile
// @Failure 400 {object} ierr.ErrorResponse
// @Router /users/document-customization [put]
func (h *UserHandler) UpdateDocumentCustomization(c *gin.Context) {
	var req dto.UpdateDocumentCustomizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	profile, err := h.userService.UpdateDocumentCustomization(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
