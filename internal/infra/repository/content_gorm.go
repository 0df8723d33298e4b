package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 配送方法

type ShippingMethodGormRepository struct {
	db *gorm.DB
}

// DI
func NewShippingMethodGormRepository(db *gorm.DB) *ShippingMethodGormRepository {
	return &ShippingMethodGormRepository{db: db}
}

func (r *ShippingMethodGormRepository) List(ctx context.Context, activeOnly bool) ([]model.ShippingMethod, error) {
	var methods []model.ShippingMethod

	tx := r.db.WithContext(ctx).Order("id asc")
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}

	if err := tx.Find(&methods).Error; err != nil {
		return []model.ShippingMethod{}, err
	}
	return methods, nil
}

func (r *ShippingMethodGormRepository) FindByID(ctx context.Context, id int64) (model.ShippingMethod, error) {
	var m model.ShippingMethod
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ShippingMethod{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ShippingMethod{}, err
	}
	return m, nil
}

func (r *ShippingMethodGormRepository) Create(ctx context.Context, m model.ShippingMethod) (model.ShippingMethod, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.ShippingMethod{}, err
	}
	return m, nil
}

func (r *ShippingMethodGormRepository) Update(ctx context.Context, m model.ShippingMethod) error {
	res := r.db.WithContext(ctx).
		Model(&model.ShippingMethod{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":      m.Name,
			"fee_minor": m.FeeMinor,
			"eta_days":  m.EtaDays,
			"is_active": m.IsActive,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShippingMethodGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.ShippingMethod{}, id)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 決済手段

type PaymentMethodGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaymentMethodGormRepository(db *gorm.DB) *PaymentMethodGormRepository {
	return &PaymentMethodGormRepository{db: db}
}

func (r *PaymentMethodGormRepository) List(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod

	tx := r.db.WithContext(ctx).Order("id asc")
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}

	if err := tx.Find(&methods).Error; err != nil {
		return []model.PaymentMethod{}, err
	}
	return methods, nil
}

func (r *PaymentMethodGormRepository) FindByCode(ctx context.Context, code string) (model.PaymentMethod, error) {
	var m model.PaymentMethod
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PaymentMethod{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PaymentMethod{}, err
	}
	return m, nil
}

func (r *PaymentMethodGormRepository) Create(ctx context.Context, m model.PaymentMethod) (model.PaymentMethod, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.PaymentMethod{}, err
	}
	return m, nil
}

func (r *PaymentMethodGormRepository) SetActive(ctx context.Context, id int64, isActive bool) error {
	res := r.db.WithContext(ctx).
		Model(&model.PaymentMethod{}).
		Where("id = ?", id).
		Update("is_active", isActive)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ページ本文

type PageContentGormRepository struct {
	db *gorm.DB
}

// DI
func NewPageContentGormRepository(db *gorm.DB) *PageContentGormRepository {
	return &PageContentGormRepository{db: db}
}

func (r *PageContentGormRepository) FindBySlug(ctx context.Context, slug string, language string) (model.PageContent, error) {
	var p model.PageContent
	err := r.db.WithContext(ctx).
		Where("slug = ? AND language = ?", slug, language).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PageContent{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PageContent{}, err
	}
	return p, nil
}

func (r *PageContentGormRepository) Upsert(ctx context.Context, p model.PageContent) (model.PageContent, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "body", "language", "updated_at",
			}),
		}).
		Create(&p).Error

	if err != nil {
		return model.PageContent{}, err
	}
	return p, nil
}

func (r *PageContentGormRepository) DeleteBySlug(ctx context.Context, slug string, language string) error {
	res := r.db.WithContext(ctx).
		Where("slug = ? AND language = ?", slug, language).
		Delete(&model.PageContent{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
