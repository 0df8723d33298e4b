package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

// DI
func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Profile{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// user_id単位のupsert
func (r *ProfileGormRepository) Upsert(ctx context.Context, p model.Profile) (model.Profile, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name", "avatar_url", "wallet_address", "preferred_currency", "updated_at",
			}),
		}).
		Create(&p).Error

	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// wallet_addressだけを更新（行が無ければ作る）
func (r *ProfileGormRepository) UpdateWalletAddress(ctx context.Context, userID int64, address string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("wallet_address", address)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		p := model.Profile{UserID: userID, WalletAddress: address}
		return r.db.WithContext(ctx).Create(&p).Error
	}
	return nil
}
