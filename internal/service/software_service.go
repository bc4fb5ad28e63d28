package service

import (
	"context"
	"errors"
	"time"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"gorm.io/gorm"
)

// SoftwareService manages the software installed on a single computer. Every
// operation 404s when the parent computer does not exist.
type SoftwareService interface {
	List(ctx context.Context, computerID uint, filter dto.SoftwareFilter) ([]model.Software, error)
	Create(ctx context.Context, computerID uint, input dto.CreateSoftwareRequest) (*model.Software, error)
	Get(ctx context.Context, computerID, softwareID uint) (*model.Software, error)
	Update(ctx context.Context, computerID, softwareID uint, input dto.UpdateSoftwareRequest) (*model.Software, error)
	Delete(ctx context.Context, computerID, softwareID uint) error
	Categories(ctx context.Context) ([]string, error)
}

type softwareService struct {
	software  repository.SoftwareRepository
	computers repository.ComputerRepository
}

func NewSoftwareService(software repository.SoftwareRepository, computers repository.ComputerRepository) SoftwareService {
	return &softwareService{
		software:  software,
		computers: computers,
	}
}

func (s *softwareService) requireComputer(ctx context.Context, computerID uint) error {
	exists, err := s.computers.Exists(ctx, computerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *softwareService) List(ctx context.Context, computerID uint, filter dto.SoftwareFilter) ([]model.Software, error) {
	if err := s.requireComputer(ctx, computerID); err != nil {
		return nil, err
	}

	return s.software.FindAllByComputer(ctx, computerID, filter)
}

func (s *softwareService) Create(ctx context.Context, computerID uint, input dto.CreateSoftwareRequest) (*model.Software, error) {
	if err := s.requireComputer(ctx, computerID); err != nil {
		return nil, err
	}

	installDate, err := parseInstallDate(input.InstallDate)
	if err != nil {
		return nil, err
	}

	software := &model.Software{
		ComputerID:  computerID,
		Name:        input.Name,
		Version:     input.Version,
		Category:    input.Category,
		Vendor:      input.Vendor,
		Description: input.Description,
		InstallDate: installDate,
	}
	if input.IsLicensed != nil {
		software.IsLicensed = *input.IsLicensed
	}

	if err := s.software.Create(ctx, software); err != nil {
		return nil, err
	}

	return software, nil
}

func (s *softwareService) Get(ctx context.Context, computerID, softwareID uint) (*model.Software, error) {
	if err := s.requireComputer(ctx, computerID); err != nil {
		return nil, err
	}

	software, err := s.software.FindByID(ctx, computerID, softwareID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	return software, nil
}

func (s *softwareService) Update(ctx context.Context, computerID, softwareID uint, input dto.UpdateSoftwareRequest) (*model.Software, error) {
	software, err := s.Get(ctx, computerID, softwareID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		software.Name = *input.Name
	}
	if input.Version != nil {
		software.Version = *input.Version
	}
	if input.Category != nil {
		software.Category = input.Category
	}
	if input.Vendor != nil {
		software.Vendor = input.Vendor
	}
	if input.Description != nil {
		software.Description = input.Description
	}
	if input.InstallDate != nil {
		installDate, err := parseInstallDate(input.InstallDate)
		if err != nil {
			return nil, err
		}
		software.InstallDate = installDate
	}
	if input.IsLicensed != nil {
		software.IsLicensed = *input.IsLicensed
	}

	if err := s.software.Update(ctx, software); err != nil {
		return nil, err
	}

	return software, nil
}

func (s *softwareService) Delete(ctx context.Context, computerID, softwareID uint) error {
	if _, err := s.Get(ctx, computerID, softwareID); err != nil {
		return err
	}

	return s.software.Delete(ctx, computerID, softwareID)
}

func (s *softwareService) Categories(ctx context.Context) ([]string, error) {
	return s.software.DistinctCategories(ctx)
}

func parseInstallDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, apperror.NewValidation("install_date", "install_date must be a date in 2006-01-02 format")
	}

	return &parsed, nil
}
