package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error
	// カートIDで明細を無条件全削除（0件でも成功）
	Clear(ctx context.Context, cartID int64) error
}
