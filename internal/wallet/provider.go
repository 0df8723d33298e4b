package wallet

import (
	"context"
	"math/big"
)

// Provider はブラウザ注入ウォレット相当の外部コラボレータ。
// 実体は持たず、契約だけに依存する。
type Provider interface {
	// アカウントへのアクセス許可を求める（ユーザーに確認が出る）
	RequestAccounts(ctx context.Context) ([]string, error)
	// メッセージ署名
	PersonalSign(ctx context.Context, message string, address string) (string, error)
	// ネイティブ資産の送金。txハッシュを返す
	SendTransfer(ctx context.Context, from string, to string, amountWei *big.Int) (string, error)
	// チェーン上の確認を待つ
	AwaitConfirmation(ctx context.Context, txHash string) error
}
