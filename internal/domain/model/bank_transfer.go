package model

import "time"

type BankTransferStatus string

const (
	//振込は照合・消込を行わないのでPENDINGのまま
	BankTransferStatusPending BankTransferStatus = "PENDING"
)

// 銀行振込の申告レシート。検証なし。
type BankTransfer struct {
	ID            int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference     string             `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	UserID        int64              `gorm:"not null;index" json:"user_id"`
	CartID        int64              `gorm:"not null;index" json:"cart_id"`
	BankName      string             `gorm:"type:varchar(255);not null" json:"bank_name"`
	AccountNumber string             `gorm:"type:varchar(64);not null" json:"account_number"`
	AmountMinor   int64              `gorm:"not null" json:"amount_minor"`
	Currency      string             `gorm:"type:varchar(10);not null" json:"currency"`
	Status        BankTransferStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time          `gorm:"not null;autoCreateTime" json:"created_at"`
}
