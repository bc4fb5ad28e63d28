package repository

import (
	"context"

	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/model"
	"gorm.io/gorm"
)

// ComputerStats is the raw aggregate row behind the statistics endpoint.
type ComputerStats struct {
	Total            int64
	Available        int64
	UnderMaintenance int64
	WithComplaints   int64
}

type ComputerRepository interface {
	FindAll(ctx context.Context, filter dto.ComputerFilter, page, perPage int) ([]model.Computer, int64, error)
	FindByID(ctx context.Context, id uint, withAssociations bool) (*model.Computer, error)
	FindByStatus(ctx context.Context, status string) ([]model.Computer, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, computer *model.Computer) error
	Update(ctx context.Context, computer *model.Computer) error
	// Delete removes the computer along with its software and complaints.
	Delete(ctx context.Context, id uint) error
	AssetTagTaken(ctx context.Context, assetTag string, excludeID uint) (bool, error)

	// ReplaceComplaints swaps the computer's entire complaint list in one
	// transaction.
	ReplaceComplaints(ctx context.Context, computerID uint, texts []string) ([]model.Complaint, error)
	AddComplaint(ctx context.Context, complaint *model.Complaint) error
	FindComplaint(ctx context.Context, computerID, complaintID uint) (*model.Complaint, error)
	UpdateComplaint(ctx context.Context, complaint *model.Complaint) error
	DeleteComplaint(ctx context.Context, computerID, complaintID uint) error

	Stats(ctx context.Context) (*ComputerStats, error)
}

type computerRepository struct {
	db *gorm.DB
}

func NewComputerRepository(db *gorm.DB) ComputerRepository {
	return &computerRepository{db: db}
}

func (r *computerRepository) FindAll(ctx context.Context, filter dto.ComputerFilter, page, perPage int) ([]model.Computer, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Computer{})

	if filter.SystemStatus != "" {
		query = query.Where("system_status = ?", filter.SystemStatus)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"os ILIKE ? OR processor ILIKE ? OR asset_tag ILIKE ? OR location ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var computers []model.Computer
	offset := (page - 1) * perPage
	if err := query.
		Preload("Complaints").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(perPage).
		Find(&computers).Error; err != nil {
		return nil, 0, err
	}

	return computers, total, nil
}

func (r *computerRepository) FindByID(ctx context.Context, id uint, withAssociations bool) (*model.Computer, error) {
	query := r.db.WithContext(ctx)
	if withAssociations {
		query = query.Preload("Complaints").Preload("Software")
	}

	var computer model.Computer
	if err := query.First(&computer, id).Error; err != nil {
		return nil, err
	}

	return &computer, nil
}

func (r *computerRepository) FindByStatus(ctx context.Context, status string) ([]model.Computer, error) {
	var computers []model.Computer
	if err := r.db.WithContext(ctx).
		Preload("Complaints").
		Where("system_status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&computers).Error; err != nil {
		return nil, err
	}

	return computers, nil
}

func (r *computerRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Computer{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *computerRepository) Create(ctx context.Context, computer *model.Computer) error {
	return r.db.WithContext(ctx).Create(computer).Error
}

func (r *computerRepository) Update(ctx context.Context, computer *model.Computer) error {
	return r.db.WithContext(ctx).
		Omit("Complaints", "Software").
		Save(computer).Error
}

func (r *computerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Software{}, "computer_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Complaint{}, "computer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Computer{}, id).Error
	})
}

func (r *computerRepository) AssetTagTaken(ctx context.Context, assetTag string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.Computer{}).
		Where("asset_tag = ?", assetTag)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *computerRepository) ReplaceComplaints(ctx context.Context, computerID uint, texts []string) ([]model.Complaint, error) {
	complaints := make([]model.Complaint, 0, len(texts))
	for _, text := range texts {
		complaints = append(complaints, model.Complaint{
			ComputerID: computerID,
			Text:       text,
			Status:     model.ComplaintOpen,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Complaint{}, "computer_id = ?", computerID).Error; err != nil {
			return err
		}
		if len(complaints) == 0 {
			return nil
		}
		return tx.Create(&complaints).Error
	})
	if err != nil {
		return nil, err
	}

	return complaints, nil
}

func (r *computerRepository) AddComplaint(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *computerRepository) FindComplaint(ctx context.Context, computerID, complaintID uint) (*model.Complaint, error) {
	var complaint model.Complaint
	if err := r.db.WithContext(ctx).
		Where("computer_id = ?", computerID).
		First(&complaint, complaintID).Error; err != nil {
		return nil, err
	}

	return &complaint, nil
}

func (r *computerRepository) UpdateComplaint(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Save(complaint).Error
}

func (r *computerRepository) DeleteComplaint(ctx context.Context, computerID, complaintID uint) error {
	return r.db.WithContext(ctx).
		Where("computer_id = ?", computerID).
		Delete(&model.Complaint{}, complaintID).Error
}

func (r *computerRepository) Stats(ctx context.Context) (*ComputerStats, error) {
	db := r.db.WithContext(ctx)
	stats := &ComputerStats{}

	if err := db.Model(&model.Computer{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Computer{}).
		Where("system_status = ?", model.StatusAvailable).
		Count(&stats.Available).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Computer{}).
		Where("system_status = ?", model.StatusUnderMaintenance).
		Count(&stats.UnderMaintenance).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Complaint{}).
		Where("status = ?", model.ComplaintOpen).
		Distinct("computer_id").
		Count(&stats.WithComplaints).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
