package repository

import (
	"context"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/model"
	"gorm.io/gorm"
)

type SoftwareRepository interface {
	FindAllByComputer(ctx context.Context, computerID uint, filter dto.SoftwareFilter) ([]model.Software, error)
	FindByID(ctx context.Context, computerID, softwareID uint) (*model.Software, error)
	Create(ctx context.Context, software *model.Software) error
	Update(ctx context.Context, software *model.Software) error
	Delete(ctx context.Context, computerID, softwareID uint) error
	DistinctCategories(ctx context.Context) ([]string, error)
}

type softwareRepository struct {
	db *gorm.DB
}

func NewSoftwareRepository(db *gorm.DB) SoftwareRepository {
	return &softwareRepository{db: db}
}

func (r *softwareRepository) FindAllByComputer(ctx context.Context, computerID uint, filter dto.SoftwareFilter) ([]model.Software, error) {
	query := r.db.WithContext(ctx).Where("computer_id = ?", computerID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"name ILIKE ? OR version ILIKE ? OR vendor ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var software []model.Software
	if err := query.Order("name ASC").Find(&software).Error; err != nil {
		return nil, err
	}

	return software, nil
}

func (r *softwareRepository) FindByID(ctx context.Context, computerID, softwareID uint) (*model.Software, error) {
	var software model.Software
	if err := r.db.WithContext(ctx).
		Where("computer_id = ?", computerID).
		First(&software, softwareID).Error; err != nil {
		return nil, err
	}

	return &software, nil
}

func (r *softwareRepository) Create(ctx context.Context, software *model.Software) error {
	return r.db.WithContext(ctx).Create(software).Error
}

func (r *softwareRepository) Update(ctx context.Context, software *model.Software) error {
	return r.db.WithContext(ctx).Save(software).Error
}

func (r *softwareRepository) Delete(ctx context.Context, computerID, softwareID uint) error {
	return r.db.WithContext(ctx).
		Where("computer_id = ?", computerID).
		Delete(&model.Software{}, softwareID).Error
}

func (r *softwareRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).
		Model(&model.Software{}).
		Where("category IS NOT NULL AND category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}

	return categories, nil
}
