package model

import "time"

type CryptoPaymentStatus string

const (
	CryptoPaymentStatusPending   CryptoPaymentStatus = "PENDING"
	CryptoPaymentStatusCompleted CryptoPaymentStatus = "COMPLETED"
)

// チェーン送金の記録。TxHashがキー。
// PENDINGで作成し、確認が取れたらCOMPLETEDへ進める。
type CryptoPayment struct {
	TxHash       string              `gorm:"primaryKey;type:varchar(80)" json:"tx_hash"`
	UserID       int64               `gorm:"not null;index" json:"user_id"`
	CartID       int64               `gorm:"not null;index" json:"cart_id"`
	PayerAddress string              `gorm:"type:varchar(64);not null" json:"payer_address"`
	AmountMinor  int64               `gorm:"not null" json:"amount_minor"`
	Currency     string              `gorm:"type:varchar(10);not null" json:"currency"`
	Status       CryptoPaymentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time           `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
