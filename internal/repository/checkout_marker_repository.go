package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CheckoutMarkerRepository interface {
	// (user_id, idempotency_key) 重複はErrDuplicateKey
	Create(ctx context.Context, m model.CheckoutMarker) (model.CheckoutMarker, error)
	FindByUserAndKey(ctx context.Context, userID int64, key string) (model.CheckoutMarker, bool, error)
	UpdateStatus(ctx context.Context, markerID int64, status model.CheckoutMarkerStatus, txHash string) error
	// FAILEDの行だけを条件付きでPENDINGに戻し、カート・手段・金額を今回の値で上書きする。
	// 並行の再試行に先を越されていたらfalse
	RearmFailed(ctx context.Context, markerID int64, cartID int64, method model.CheckoutMethod, amountMinor int64) (bool, error)
	// PAIDで止まった行（支払い済み・カート未クリア）
	ListPaidByUserID(ctx context.Context, userID int64) ([]model.CheckoutMarker, error)
}
