package handler

import (
	"net/http"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/service"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/foc-sab/ctrlroom/pkg/response"
	"github.com/foc-sab/ctrlroom/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	service service.ProfileService
}

func NewUserHandler(service service.ProfileService) *UserHandler {
	return &UserHandler{service: service}
}

// CurrentUser returns the caller's identity and role.
func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	h.CurrentUser(c)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	// Optional multipart profile picture.
	var picture *dto.ProfilePicture
	if file, err := c.FormFile("profile_picture"); err == nil && file != nil {
		opened, err := file.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer opened.Close()
		picture = &dto.ProfilePicture{Reader: opened, FileName: file.Filename}
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req, picture)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Profile updated successfully", user)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.DeleteAccount(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Account deleted successfully", nil)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid user id", nil))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, user)
}
