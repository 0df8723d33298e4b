package usecase

import (
	"context"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 自分の決済履歴の参照
type PaymentsUsecase struct {
	cryptoRepo repo.CryptoPaymentRepository
	bankRepo   repo.BankTransferRepository
}

// DI
func NewPaymentsUsecase(cryptoRepo repo.CryptoPaymentRepository, bankRepo repo.BankTransferRepository) *PaymentsUsecase {
	return &PaymentsUsecase{cryptoRepo: cryptoRepo, bankRepo: bankRepo}
}

type PaymentHistoryOutput struct {
	Crypto []model.CryptoPayment `json:"crypto"`
	Bank   []model.BankTransfer  `json:"bank"`
}

func (u *PaymentsUsecase) ListMyPayments(ctx context.Context, userID int64) (PaymentHistoryOutput, error) {
	if userID <= 0 {
		return PaymentHistoryOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	crypto, err := u.cryptoRepo.ListByUserID(ctx, userID)
	if err != nil {
		return PaymentHistoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	bank, err := u.bankRepo.ListByUserID(ctx, userID)
	if err != nil {
		return PaymentHistoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PaymentHistoryOutput{Crypto: crypto, Bank: bank}, nil
}
