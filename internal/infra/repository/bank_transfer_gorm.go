package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type BankTransferGormRepository struct {
	db *gorm.DB
}

// DI
func NewBankTransferGormRepository(db *gorm.DB) *BankTransferGormRepository {
	return &BankTransferGormRepository{db: db}
}

func (r *BankTransferGormRepository) Create(ctx context.Context, t model.BankTransfer) (model.BankTransfer, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.BankTransfer{}, err
	}
	return t, nil
}

func (r *BankTransferGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.BankTransfer, error) {
	var transfers []model.BankTransfer

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&transfers).Error; err != nil {
		return []model.BankTransfer{}, err
	}
	return transfers, nil
}
