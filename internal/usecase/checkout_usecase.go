package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/wallet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 決済アダプタの約束（実体は internal/wallet）
type PaymentAdapter interface {
	Pay(ctx context.Context, in wallet.PayInput) (wallet.PayResult, error)
}

// CheckoutUsecase はカート確定の一連（検証→支払い→クリア）を順番に実行する。
// 各ステップの間に並行実行はない。
type CheckoutUsecase struct {
	tx             repo.TransactionManager
	cartRepo       repo.CartRepository
	cartItemRepo   repo.CartItemRepository
	markerRepo     repo.CheckoutMarkerRepository
	methodRepo     repo.PaymentMethodRepository
	adapter        PaymentAdapter
	confirmTimeout contextTimeout
	logger         *zap.Logger
}

// context.WithTimeoutに渡す値の持ち回り用
type contextTimeout = func(ctx context.Context) (context.Context, context.CancelFunc)

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	markerRepo repo.CheckoutMarkerRepository,
	methodRepo repo.PaymentMethodRepository,
	adapter PaymentAdapter,
	confirmTimeout contextTimeout,
	logger *zap.Logger,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:             tx,
		cartRepo:       cartRepo,
		cartItemRepo:   cartItemRepo,
		markerRepo:     markerRepo,
		methodRepo:     methodRepo,
		adapter:        adapter,
		confirmTimeout: confirmTimeout,
		logger:         logger,
	}
}

type CheckoutInput struct {
	IdempotencyKey string
	Method         string // bank / crypto
	BankName       string
	AccountNumber  string
	Currency       string
}

type CheckoutResponse struct {
	Status string `json:"status"` // paid / pending
	Method string `json:"method"`
	Amount int64  `json:"amount"`
	TxHash string `json:"tx_hash,omitempty"`
}

// Checkout 本体。
// カートがクリアされるのは支払い成功の場合だけ。クリア失敗は成功応答のままログに残し、
// PAIDマーカー経由で次回ロード時に回収する。
func (u *CheckoutUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (CheckoutResponse, error) {
	if userID <= 0 {
		return CheckoutResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//入力検証はリモート呼び出しの前に全部済ませる
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	method := model.CheckoutMethod(in.Method)
	if method != model.CheckoutMethodBank && method != model.CheckoutMethodCrypto {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "invalid method")
	}

	if method == model.CheckoutMethodBank {
		if strings.TrimSpace(in.BankName) == "" || strings.TrimSpace(in.AccountNumber) == "" {
			return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "bank name and account number required")
		}
	}

	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = "USD"
	}

	// 同じキーなら同じ結果。実行中なら二重投入として拒否
	existing, found, err := u.markerRepo.FindByUserAndKey(ctx, userID, key)
	if err != nil {
		return CheckoutResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		switch existing.Status {
		case model.CheckoutMarkerStatusPending:
			return CheckoutResponse{}, NewHTTPError(http.StatusConflict, "checkout in progress")
		case model.CheckoutMarkerStatusPaid, model.CheckoutMarkerStatusCleared:
			return markerToResponse(existing), nil
		case model.CheckoutMarkerStatusFailed:
			//失敗後の再試行は同じマーカーを使い回す
		}
	}

	//ACTIVEカートと明細
	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if err != nil {
		return CheckoutResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CheckoutResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	var total int64 = 0
	for _, it := range items {
		total += it.UnitPriceSnapshot * it.Quantity
	}

	//管理側で無効化された決済手段は弾く（未登録コードは通す）
	if m, err := u.methodRepo.FindByCode(ctx, string(method)); err == nil && !m.IsActive {
		return CheckoutResponse{}, NewHTTPError(http.StatusBadRequest, "payment method disabled")
	}

	marker, err := u.ensurePendingMarker(ctx, userID, key, cart.ID, method, total, existing, found)
	if err != nil {
		return CheckoutResponse{}, err
	}

	switch method {
	case model.CheckoutMethodBank:
		return u.checkoutBank(ctx, userID, cart.ID, marker, in, total, currency)
	default:
		return u.checkoutCrypto(ctx, userID, cart.ID, marker, total, currency)
	}
}

// 実行中マーカーを用意する。FAILEDの使い回しは条件付き更新でPENDINGに戻す。
func (u *CheckoutUsecase) ensurePendingMarker(
	ctx context.Context,
	userID int64,
	key string,
	cartID int64,
	method model.CheckoutMethod,
	total int64,
	existing model.CheckoutMarker,
	found bool,
) (model.CheckoutMarker, error) {
	if found {
		//WHERE status='FAILED' 付きの更新。勝者1本だけが決済へ進む。
		//再試行時点のカート・手段・金額で上書きし、古い結果を再生しない
		rearmed, err := u.markerRepo.RearmFailed(ctx, existing.ID, cartID, method, total)
		if err != nil {
			return model.CheckoutMarker{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !rearmed {
			//並行の再試行が先に進めている
			return model.CheckoutMarker{}, NewHTTPError(http.StatusConflict, "checkout in progress")
		}
		existing.Status = model.CheckoutMarkerStatusPending
		existing.CartID = cartID
		existing.Method = method
		existing.AmountMinor = total
		existing.TxHash = ""
		return existing, nil
	}

	marker, err := u.markerRepo.Create(ctx, model.CheckoutMarker{
		UserID:         userID,
		IdempotencyKey: key,
		CartID:         cartID,
		Method:         method,
		AmountMinor:    total,
		Status:         model.CheckoutMarkerStatusPending,
	})
	if err != nil {
		//同時に同じキーが入った場合：先行の1件だけを通す
		if errors.Is(err, repo.ErrDuplicateKey) {
			return model.CheckoutMarker{}, NewHTTPError(http.StatusConflict, "checkout in progress")
		}
		return model.CheckoutMarker{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return marker, nil
}

// 銀行振込：レシートを記録してPAIDにするだけ。照合・消込はしない。
func (u *CheckoutUsecase) checkoutBank(
	ctx context.Context,
	userID int64,
	cartID int64,
	marker model.CheckoutMarker,
	in CheckoutInput,
	total int64,
	currency string,
) (CheckoutResponse, error) {
	//レシート記録とPAIDは同じトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.BankTransfers().Create(ctx, model.BankTransfer{
			Reference:     uuid.NewString(),
			UserID:        userID,
			CartID:        cartID,
			BankName:      strings.TrimSpace(in.BankName),
			AccountNumber: strings.TrimSpace(in.AccountNumber),
			AmountMinor:   total,
			Currency:      currency,
			Status:        model.BankTransferStatusPending,
		}); err != nil {
			return err
		}
		return r.CheckoutMarkers().UpdateStatus(ctx, marker.ID, model.CheckoutMarkerStatusPaid, "")
	})
	if err != nil {
		u.markFailed(ctx, marker.ID)
		return CheckoutResponse{}, NewHTTPError(http.StatusInternalServerError, "payment record failed")
	}

	u.clearAfterPayment(ctx, cartID, marker.ID)

	return CheckoutResponse{
		Status: "paid",
		Method: string(model.CheckoutMethodBank),
		Amount: total,
	}, nil
}

// 暗号資産：アダプタに委譲。失敗ならカートはそのまま残す。
func (u *CheckoutUsecase) checkoutCrypto(
	ctx context.Context,
	userID int64,
	cartID int64,
	marker model.CheckoutMarker,
	total int64,
	currency string,
) (CheckoutResponse, error) {
	payCtx, cancel := u.confirmTimeout(ctx)
	defer cancel()

	res, err := u.adapter.Pay(payCtx, wallet.PayInput{
		UserID:      userID,
		CartID:      cartID,
		AmountMinor: total,
		Currency:    currency,
	})
	if err != nil {
		u.markFailed(ctx, marker.ID)
		return CheckoutResponse{}, paymentErrorToHTTP(err)
	}

	if res.Pending {
		//送金済みだが確認待ち。失敗ではないのでマーカーはPENDINGのまま、
		//カートもクリアしない
		if err := u.markerRepo.UpdateStatus(ctx, marker.ID, model.CheckoutMarkerStatusPending, res.TxHash); err != nil {
			u.logger.Warn("marker tx hash update failed", zap.Int64("marker_id", marker.ID), zap.Error(err))
		}
		return CheckoutResponse{
			Status: "pending",
			Method: string(model.CheckoutMethodCrypto),
			Amount: total,
			TxHash: res.TxHash,
		}, nil
	}

	//ここでPAIDを書いてからクリアに進む
	if err := u.markerRepo.UpdateStatus(ctx, marker.ID, model.CheckoutMarkerStatusPaid, res.TxHash); err != nil {
		//支払いは完了している。ログだけ残して成功として返す
		u.logger.Error("paid marker write failed",
			zap.Int64("marker_id", marker.ID), zap.String("tx_hash", res.TxHash), zap.Error(err))
	}

	u.clearAfterPayment(ctx, cartID, marker.ID)

	return CheckoutResponse{
		Status: "paid",
		Method: string(model.CheckoutMethodCrypto),
		Amount: total,
		TxHash: res.TxHash,
	}, nil
}

// 支払い成功後のクリア。失敗してもユーザーには成功のまま（お金は動いている）。
// PAIDマーカーが残るので次回ロードで回収される。
func (u *CheckoutUsecase) clearAfterPayment(ctx context.Context, cartID int64, markerID int64) {
	if err := u.cartRepo.Clear(ctx, cartID); err != nil {
		u.logger.Error("cart clear after payment failed",
			zap.Int64("cart_id", cartID), zap.Error(err))
		return
	}
	if err := u.markerRepo.UpdateStatus(ctx, markerID, model.CheckoutMarkerStatusCleared, ""); err != nil {
		u.logger.Warn("marker advance failed", zap.Int64("marker_id", markerID), zap.Error(err))
	}
}

func (u *CheckoutUsecase) markFailed(ctx context.Context, markerID int64) {
	if err := u.markerRepo.UpdateStatus(ctx, markerID, model.CheckoutMarkerStatusFailed, ""); err != nil {
		u.logger.Warn("marker fail write failed", zap.Int64("marker_id", markerID), zap.Error(err))
	}
}

// アダプタのエラーをHTTPの形に直す
func paymentErrorToHTTP(err error) error {
	switch {
	case errors.Is(err, wallet.ErrWalletUnavailable):
		return NewHTTPError(http.StatusBadRequest, "wallet unavailable")
	case errors.Is(err, wallet.ErrUserRejected):
		return NewHTTPError(http.StatusBadRequest, "payment rejected")
	case errors.Is(err, wallet.ErrSubmission):
		return NewHTTPError(http.StatusBadGateway, "payment submission failed")
	case errors.Is(err, wallet.ErrConfirmation):
		return NewHTTPError(http.StatusBadGateway, "payment confirmation failed")
	default:
		return NewHTTPError(http.StatusInternalServerError, "payment failed")
	}
}

// 解決済みマーカーからの再生
func markerToResponse(m model.CheckoutMarker) CheckoutResponse {
	return CheckoutResponse{
		Status: "paid",
		Method: string(m.Method),
		Amount: m.AmountMinor,
		TxHash: m.TxHash,
	}
}
