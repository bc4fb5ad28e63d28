package handler

import (
	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/service"
	"github.com/foc-sab/ctrlroom/pkg/response"
	"github.com/foc-sab/ctrlroom/pkg/validator"
	"github.com/gin-gonic/gin"
)

type SoftwareHandler struct {
	service service.SoftwareService
}

func NewSoftwareHandler(service service.SoftwareService) *SoftwareHandler {
	return &SoftwareHandler{service: service}
}

func (h *SoftwareHandler) List(c *gin.Context) {
	computerID, ok := computerID(c)
	if !ok {
		return
	}

	var filter dto.SoftwareFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	software, err := h.service.List(c.Request.Context(), computerID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, software)
}

func (h *SoftwareHandler) Create(c *gin.Context) {
	computerID, ok := computerID(c)
	if !ok {
		return
	}

	var req dto.CreateSoftwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	software, err := h.service.Create(c.Request.Context(), computerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Software added successfully", software)
}

func (h *SoftwareHandler) Get(c *gin.Context) {
	computerID, ok := computerID(c)
	if !ok {
		return
	}
	softwareID, ok := uintParam(c, "softwareID")
	if !ok {
		return
	}

	software, err := h.service.Get(c.Request.Context(), computerID, softwareID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, software)
}

func (h *SoftwareHandler) Update(c *gin.Context) {
	computerID, ok := computerID(c)
	if !ok {
		return
	}
	softwareID, ok := uintParam(c, "softwareID")
	if !ok {
		return
	}

	var req dto.UpdateSoftwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	software, err := h.service.Update(c.Request.Context(), computerID, softwareID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Software updated successfully", software)
}

func (h *SoftwareHandler) Delete(c *gin.Context) {
	computerID, ok := computerID(c)
	if !ok {
		return
	}
	softwareID, ok := uintParam(c, "softwareID")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), computerID, softwareID); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Software removed successfully", nil)
}

func (h *SoftwareHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, categories)
}
