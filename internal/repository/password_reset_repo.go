package repository

import (
	"context"

	"github.com/foc-sab/ctrlroom/internal/model"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	// Upsert stores the reset record for its email, replacing any prior one.
	Upsert(ctx context.Context, reset *model.PasswordReset) error
	FindByEmail(ctx context.Context, email string) (*model.PasswordReset, error)
	Delete(ctx context.Context, email string) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Upsert(ctx context.Context, reset *model.PasswordReset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.PasswordReset{}, "email = ?", reset.Email).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
}

func (r *passwordResetRepository) FindByEmail(ctx context.Context, email string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&reset).Error; err != nil {
		return nil, err
	}

	return &reset, nil
}

func (r *passwordResetRepository) Delete(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&model.PasswordReset{}, "email = ?", email).Error
}
