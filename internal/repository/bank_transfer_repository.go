package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type BankTransferRepository interface {
	Create(ctx context.Context, t model.BankTransfer) (model.BankTransfer, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.BankTransfer, error)
}
