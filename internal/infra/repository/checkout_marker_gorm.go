package repository

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type CheckoutMarkerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCheckoutMarkerGormRepository(db *gorm.DB) *CheckoutMarkerGormRepository {
	return &CheckoutMarkerGormRepository{db: db}
}

func (r *CheckoutMarkerGormRepository) Create(ctx context.Context, m model.CheckoutMarker) (model.CheckoutMarker, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		//同じキーの同時投入
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return model.CheckoutMarker{}, repo.ErrDuplicateKey
		}
		return model.CheckoutMarker{}, err
	}
	return m, nil
}

func (r *CheckoutMarkerGormRepository) FindByUserAndKey(ctx context.Context, userID int64, key string) (model.CheckoutMarker, bool, error) {
	var m model.CheckoutMarker

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CheckoutMarker{}, false, nil
	}
	if err != nil {
		return model.CheckoutMarker{}, false, err
	}
	return m, true, nil
}

func (r *CheckoutMarkerGormRepository) UpdateStatus(ctx context.Context, markerID int64, status model.CheckoutMarkerStatus, txHash string) error {
	updates := map[string]interface{}{"status": status}
	if txHash != "" {
		updates["tx_hash"] = txHash
	}

	res := r.db.WithContext(ctx).
		Model(&model.CheckoutMarker{}).
		Where("id = ?", markerID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// status='FAILED'をWHEREに含めた条件付き更新。
// 同じキーの再試行が並んだ場合、この更新に勝った1本だけが決済へ進む。
func (r *CheckoutMarkerGormRepository) RearmFailed(ctx context.Context, markerID int64, cartID int64, method model.CheckoutMethod, amountMinor int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.CheckoutMarker{}).
		Where("id = ? AND status = ?", markerID, model.CheckoutMarkerStatusFailed).
		Updates(map[string]interface{}{
			"status":       model.CheckoutMarkerStatusPending,
			"cart_id":      cartID,
			"method":       method,
			"amount_minor": amountMinor,
			"tx_hash":      "",
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// 支払い済み・カート未クリアの行
func (r *CheckoutMarkerGormRepository) ListPaidByUserID(ctx context.Context, userID int64) ([]model.CheckoutMarker, error) {
	var markers []model.CheckoutMarker

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.CheckoutMarkerStatusPaid).
		Order("id asc").
		Find(&markers).Error; err != nil {
		return []model.CheckoutMarker{}, err
	}
	return markers, nil
}
