package wallet

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// チェーンの最小単位は18桁固定小数
const chainDecimals = 18

// 最小通貨単位（セント）をweiに変換する。
// 為替換算は行わない。金額はそのままネイティブ資産単位として扱う。
func MinorToWei(amountMinor int64) (*big.Int, error) {
	if amountMinor <= 0 {
		return nil, errors.New("amount must be positive")
	}

	// セント → 表示単位（-2桁）→ wei（+18桁）
	d := decimal.New(amountMinor, -2).Shift(chainDecimals)
	if !d.IsInteger() {
		return nil, errors.New("amount not representable in wei")
	}

	return d.BigInt(), nil
}
