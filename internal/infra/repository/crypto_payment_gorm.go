package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type CryptoPaymentGormRepository struct {
	db *gorm.DB
}

// DI
func NewCryptoPaymentGormRepository(db *gorm.DB) *CryptoPaymentGormRepository {
	return &CryptoPaymentGormRepository{db: db}
}

func (r *CryptoPaymentGormRepository) Create(ctx context.Context, p model.CryptoPayment) error {
	return r.db.WithContext(ctx).Create(&p).Error
}

// txHashで状態を進める
func (r *CryptoPaymentGormRepository) UpdateStatus(ctx context.Context, txHash string, status model.CryptoPaymentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.CryptoPayment{}).
		Where("tx_hash = ?", txHash).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CryptoPaymentGormRepository) FindByTxHash(ctx context.Context, txHash string) (model.CryptoPayment, error) {
	var p model.CryptoPayment
	err := r.db.WithContext(ctx).Where("tx_hash = ?", txHash).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CryptoPayment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CryptoPayment{}, err
	}
	return p, nil
}

func (r *CryptoPaymentGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CryptoPayment, error) {
	var payments []model.CryptoPayment

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		return []model.CryptoPayment{}, err
	}
	return payments, nil
}
