package handler

import (
	"net/http"
	"strconv"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/service"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/foc-sab/ctrlroom/pkg/response"
	"github.com/foc-sab/ctrlroom/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ComputerHandler struct {
	service service.ComputerService
}

func NewComputerHandler(service service.ComputerService) *ComputerHandler {
	return &ComputerHandler{service: service}
}

func (h *ComputerHandler) List(c *gin.Context) {
	var filter dto.ComputerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ComputerHandler) Create(c *gin.Context) {
	var req dto.CreateComputerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	computer, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Computer created successfully", computer)
}

func (h *ComputerHandler) Get(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}

	computer, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, computer)
}

func (h *ComputerHandler) Update(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}

	var req dto.UpdateComputerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	computer, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Computer updated successfully", computer)
}

func (h *ComputerHandler) Delete(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Computer deleted successfully", nil)
}

func (h *ComputerHandler) ListByStatus(c *gin.Context) {
	computers, err := h.service.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, computers)
}

func (h *ComputerHandler) UpdateStatus(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	computer, err := h.service.UpdateStatus(c.Request.Context(), id, req.SystemStatus)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Computer status updated successfully", computer)
}

func (h *ComputerHandler) SetComplaints(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}

	var req dto.SetComplaintsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	computer, err := h.service.SetComplaints(c.Request.Context(), id, *req.Complaints)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Computer complaints updated successfully", computer)
}

func (h *ComputerHandler) AddComplaint(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}

	var req dto.AddComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	complaint, err := h.service.AddComplaint(c.Request.Context(), id, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Complaint added successfully", complaint)
}

func (h *ComputerHandler) UpdateComplaint(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}
	complaintID, ok := uintParam(c, "complaintID")
	if !ok {
		return
	}

	var req dto.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.ToValidationError(err))
		return
	}

	complaint, err := h.service.UpdateComplaint(c.Request.Context(), id, complaintID, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Complaint updated successfully", complaint)
}

func (h *ComputerHandler) DeleteComplaint(c *gin.Context) {
	id, ok := computerID(c)
	if !ok {
		return
	}
	complaintID, ok := uintParam(c, "complaintID")
	if !ok {
		return
	}

	if err := h.service.DeleteComplaint(c.Request.Context(), id, complaintID); err != nil {
		response.Error(c, err)
		return
	}

	response.OKMessage(c, "Complaint removed successfully", nil)
}

func (h *ComputerHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats)
}

func computerID(c *gin.Context) (uint, bool) {
	return uintParam(c, "id")
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid "+name, nil))
		return 0, false
	}
	return uint(value), true
}
