package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CryptoPaymentRepository interface {
	Create(ctx context.Context, p model.CryptoPayment) error
	UpdateStatus(ctx context.Context, txHash string, status model.CryptoPaymentStatus) error
	FindByTxHash(ctx context.Context, txHash string) (model.CryptoPayment, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.CryptoPayment, error)
}
