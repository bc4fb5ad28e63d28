package service

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type ComputerService interface {
	List(ctx context.Context, filter dto.ComputerFilter) (*dto.PaginatedComputersResponse, error)
	Create(ctx context.Context, input dto.CreateComputerRequest) (*model.Computer, error)
	Get(ctx context.Context, id uint) (*model.Computer, error)
	Update(ctx context.Context, id uint, input dto.UpdateComputerRequest) (*model.Computer, error)
	Delete(ctx context.Context, id uint) error
	ListByStatus(ctx context.Context, status string) ([]model.Computer, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*model.Computer, error)
	// SetComplaints replaces the computer's whole complaint list.
	SetComplaints(ctx context.Context, id uint, texts []string) (*model.Computer, error)
	AddComplaint(ctx context.Context, id uint, text string) (*model.Complaint, error)
	UpdateComplaint(ctx context.Context, id, complaintID uint, status string) (*model.Complaint, error)
	DeleteComplaint(ctx context.Context, id, complaintID uint) error
	Statistics(ctx context.Context) (*dto.ComputerStatistics, error)
}

type computerService struct {
	computers repository.ComputerRepository
	sanitizer *bluemonday.Policy
}

func NewComputerService(computers repository.ComputerRepository) ComputerService {
	return &computerService{
		computers: computers,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *computerService) List(ctx context.Context, filter dto.ComputerFilter) (*dto.PaginatedComputersResponse, error) {
	if filter.SystemStatus != "" && !model.IsValidSystemStatus(filter.SystemStatus) {
		return nil, apperror.New(http.StatusBadRequest, "invalid system status", apperror.ErrBadRequest)
	}

	page := dto.ClampPage(filter.Page)
	perPage := dto.DefaultPerPage
	if filter.PerPage != nil {
		perPage = dto.ClampPerPage(*filter.PerPage)
	}

	computers, total, err := s.computers.FindAll(ctx, filter, page, perPage)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}

	return &dto.PaginatedComputersResponse{
		Computers: computers,
		Meta: dto.PaginationMeta{
			CurrentPage: page,
			PerPage:     perPage,
			TotalPages:  totalPages,
			TotalItems:  total,
		},
	}, nil
}

func (s *computerService) Create(ctx context.Context, input dto.CreateComputerRequest) (*model.Computer, error) {
	if input.AssetTag != nil && *input.AssetTag != "" {
		taken, err := s.computers.AssetTagTaken(ctx, *input.AssetTag, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.ErrConflict
		}
	}

	computer := &model.Computer{
		SystemStatus: input.SystemStatus,
		OS:           input.OS,
		Processor:    input.Processor,
		RAM:          input.RAM,
		Storage:      input.Storage,
		GraphicsCard: input.GraphicsCard,
		Motherboard:  input.Motherboard,
		Location:     input.Location,
		AssetTag:     normalizeAssetTag(input.AssetTag),
	}

	for _, text := range input.Complaints {
		computer.Complaints = append(computer.Complaints, model.Complaint{
			Text:   s.sanitizer.Sanitize(text),
			Status: model.ComplaintOpen,
		})
	}

	if err := s.computers.Create(ctx, computer); err != nil {
		return nil, err
	}

	return computer, nil
}

func (s *computerService) Get(ctx context.Context, id uint) (*model.Computer, error) {
	computer, err := s.computers.FindByID(ctx, id, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return computer, nil
}

func (s *computerService) Update(ctx context.Context, id uint, input dto.UpdateComputerRequest) (*model.Computer, error) {
	computer, err := s.computers.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.AssetTag != nil && *input.AssetTag != "" {
		// The record's own tag never conflicts with itself.
		taken, err := s.computers.AssetTagTaken(ctx, *input.AssetTag, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.ErrConflict
		}
	}

	if input.SystemStatus != nil {
		computer.SystemStatus = *input.SystemStatus
	}
	if input.OS != nil {
		computer.OS = input.OS
	}
	if input.Processor != nil {
		computer.Processor = input.Processor
	}
	if input.RAM != nil {
		computer.RAM = input.RAM
	}
	if input.Storage != nil {
		computer.Storage = input.Storage
	}
	if input.GraphicsCard != nil {
		computer.GraphicsCard = input.GraphicsCard
	}
	if input.Motherboard != nil {
		computer.Motherboard = input.Motherboard
	}
	if input.Location != nil {
		computer.Location = input.Location
	}
	if input.AssetTag != nil {
		computer.AssetTag = normalizeAssetTag(input.AssetTag)
	}

	if err := s.computers.Update(ctx, computer); err != nil {
		return nil, err
	}

	return computer, nil
}

func (s *computerService) Delete(ctx context.Context, id uint) error {
	exists, err := s.computers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrNotFound
	}

	return s.computers.Delete(ctx, id)
}

func (s *computerService) ListByStatus(ctx context.Context, status string) ([]model.Computer, error) {
	if !model.IsValidSystemStatus(status) {
		return nil, apperror.New(http.StatusBadRequest, "invalid system status", apperror.ErrBadRequest)
	}

	return s.computers.FindByStatus(ctx, status)
}

func (s *computerService) UpdateStatus(ctx context.Context, id uint, status string) (*model.Computer, error) {
	// Flat two-state system: any status is reachable from any other.
	if !model.IsValidSystemStatus(status) {
		return nil, apperror.NewValidation("system_status", "system_status must be one of: available under_maintenance")
	}

	computer, err := s.computers.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	computer.SystemStatus = status
	if err := s.computers.Update(ctx, computer); err != nil {
		return nil, err
	}

	return computer, nil
}

func (s *computerService) SetComplaints(ctx context.Context, id uint, texts []string) (*model.Computer, error) {
	computer, err := s.computers.FindByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	sanitized := make([]string, 0, len(texts))
	for _, text := range texts {
		if len(text) > 500 {
			return nil, apperror.NewValidation("complaints", "each complaint must be at most 500 characters")
		}
		sanitized = append(sanitized, s.sanitizer.Sanitize(text))
	}

	complaints, err := s.computers.ReplaceComplaints(ctx, id, sanitized)
	if err != nil {
		return nil, err
	}

	computer.Complaints = complaints
	return computer, nil
}

func (s *computerService) AddComplaint(ctx context.Context, id uint, text string) (*model.Complaint, error) {
	exists, err := s.computers.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.ErrNotFound
	}

	complaint := &model.Complaint{
		ComputerID: id,
		Text:       s.sanitizer.Sanitize(text),
		Status:     model.ComplaintOpen,
	}
	if err := s.computers.AddComplaint(ctx, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

func (s *computerService) UpdateComplaint(ctx context.Context, id, complaintID uint, status string) (*model.Complaint, error) {
	complaint, err := s.computers.FindComplaint(ctx, id, complaintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	complaint.Status = status
	if err := s.computers.UpdateComplaint(ctx, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

func (s *computerService) DeleteComplaint(ctx context.Context, id, complaintID uint) error {
	if _, err := s.computers.FindComplaint(ctx, id, complaintID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	return s.computers.DeleteComplaint(ctx, id, complaintID)
}

func (s *computerService) Statistics(ctx context.Context) (*dto.ComputerStatistics, error) {
	stats, err := s.computers.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ComputerStatistics{
		TotalComputers:            stats.Total,
		AvailableComputers:        stats.Available,
		UnderMaintenanceComputers: stats.UnderMaintenance,
		ComputersWithComplaints:   stats.WithComplaints,
		AvailabilityPercentage:    availabilityPercentage(stats.Available, stats.Total),
	}, nil
}

// availabilityPercentage is available/total*100 rounded to two decimals,
// and 0 for an empty inventory.
func availabilityPercentage(available, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(available)/float64(total)*100*100) / 100
}

func normalizeAssetTag(tag *string) *string {
	if tag == nil || *tag == "" {
		return nil
	}
	return tag
}
