package wallet

import "errors"

var (
	// ウォレット未注入
	ErrWalletUnavailable = errors.New("wallet unavailable")
	// アクセス許可か署名をユーザーが拒否
	ErrUserRejected = errors.New("user rejected")
	// 送信時のプロバイダ/ネットワーク障害
	ErrSubmission = errors.New("submission failed")
	// 確認待ち中の障害。時間切れは失敗ではなくPayResult.Pendingで返す
	ErrConfirmation = errors.New("confirmation failed")
)
