package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID int64
	Sort       string // new / price_asc / price_desc
}

type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SetActive(ctx context.Context, productID int64, isActive bool) error
	SoftDelete(ctx context.Context, productID int64) error
}
