package handler

import (
	"strings"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/service"
	"github.com/foc-sab/ctrlroom/pkg/response"
	"github.com/foc-sab/ctrlroom/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	if err := h.service.RegisterStudent(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Student registered successfully.", nil)
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	if err := h.service.RegisterAdmin(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Admin registered successfully.", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, resp.Message, gin.H{
		"user":  resp.User,
		"role":  resp.Role,
		"token": resp.Token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Logged out successfully", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	// Same acknowledgement whether or not the address has an account.
	response.OKMessage(c, "If an account exists for that address, a reset link has been sent.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Password has been reset.", nil)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
