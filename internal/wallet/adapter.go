package wallet

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"go.uber.org/zap"
)

// Pay の結果。Pendingは「送金済みだが確認が取れていない」状態で、失敗ではない。
type PayResult struct {
	TxHash  string
	Payer   string
	Pending bool
}

type PayInput struct {
	UserID      int64
	CartID      int64
	AmountMinor int64
	Currency    string
}

// Adapter はウォレット経由のネイティブ資産送金を1回分実行する。
type Adapter struct {
	provider  Provider
	profiles  repo.ProfileRepository
	payments  repo.CryptoPaymentRepository
	recipient string
	logger    *zap.Logger
}

// DI
func NewAdapter(
	provider Provider,
	profiles repo.ProfileRepository,
	payments repo.CryptoPaymentRepository,
	recipient string,
	logger *zap.Logger,
) *Adapter {
	return &Adapter{
		provider:  provider,
		profiles:  profiles,
		payments:  payments,
		recipient: recipient,
		logger:    logger,
	}
}

// Pay は口座アクセス→送金→pending記録→確認待ち→completedの順で進める。
// ctxのdeadlineが確認待ちの上限。リトライはしない。
func (a *Adapter) Pay(ctx context.Context, in PayInput) (PayResult, error) {
	if a.provider == nil {
		return PayResult{}, ErrWalletUnavailable
	}

	//アクセス許可（ユーザーに確認が出る）
	accounts, err := a.provider.RequestAccounts(ctx)
	if err != nil {
		return PayResult{}, fmt.Errorf("%w: %v", ErrUserRejected, err)
	}
	if len(accounts) == 0 {
		return PayResult{}, ErrWalletUnavailable
	}
	payer := accounts[0]

	//登録済みアドレスがあればそちらを使う。無ければ今回のを保存（失敗しても続行）
	profile, err := a.profiles.FindByUserID(ctx, in.UserID)
	if err == nil && profile.WalletAddress != "" {
		payer = profile.WalletAddress
	} else {
		if err := a.profiles.UpdateWalletAddress(ctx, in.UserID, payer); err != nil {
			a.logger.Warn("wallet address persist failed",
				zap.Int64("user_id", in.UserID), zap.Error(err))
		}
	}

	amountWei, err := MinorToWei(in.AmountMinor)
	if err != nil {
		return PayResult{}, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	//送金。返ってきたハッシュでpending行を即時記録
	txHash, err := a.provider.SendTransfer(ctx, payer, a.recipient, amountWei)
	if err != nil {
		if errors.Is(err, ErrUserRejected) {
			return PayResult{}, err
		}
		return PayResult{}, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	if err := a.payments.Create(ctx, model.CryptoPayment{
		TxHash:       txHash,
		UserID:       in.UserID,
		CartID:       in.CartID,
		PayerAddress: payer,
		AmountMinor:  in.AmountMinor,
		Currency:     in.Currency,
		Status:       model.CryptoPaymentStatusPending,
	}); err != nil {
		//送金自体は出ているので記録失敗で止めない
		a.logger.Error("pending payment record failed",
			zap.String("tx_hash", txHash), zap.Error(err))
	}

	//確認待ち（ctxのdeadlineが上限）
	if err := a.provider.AwaitConfirmation(ctx, txHash); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			//行はpendingのまま残す
			return PayResult{TxHash: txHash, Payer: payer, Pending: true}, nil
		}
		return PayResult{}, fmt.Errorf("%w: %v", ErrConfirmation, err)
	}

	if err := a.payments.UpdateStatus(ctx, txHash, model.CryptoPaymentStatusCompleted); err != nil {
		//確認は取れているので成功扱い。行は後続の照合用に残る
		a.logger.Error("payment status update failed",
			zap.String("tx_hash", txHash), zap.Error(err))
	}

	return PayResult{TxHash: txHash, Payer: payer}, nil
}
