package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ShippingMethodRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.ShippingMethod, error)
	FindByID(ctx context.Context, id int64) (model.ShippingMethod, error)
	Create(ctx context.Context, m model.ShippingMethod) (model.ShippingMethod, error)
	Update(ctx context.Context, m model.ShippingMethod) error
	DeleteByID(ctx context.Context, id int64) error
}

type PaymentMethodRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error)
	FindByCode(ctx context.Context, code string) (model.PaymentMethod, error)
	Create(ctx context.Context, m model.PaymentMethod) (model.PaymentMethod, error)
	SetActive(ctx context.Context, id int64, isActive bool) error
}

type PageContentRepository interface {
	FindBySlug(ctx context.Context, slug string, language string) (model.PageContent, error)
	// slug+languageで無ければ作成、あれば上書き
	Upsert(ctx context.Context, p model.PageContent) (model.PageContent, error)
	DeleteBySlug(ctx context.Context, slug string, language string) error
}
