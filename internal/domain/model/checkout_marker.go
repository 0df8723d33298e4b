package model

import "time"

type CheckoutMarkerStatus string

const (
	// 支払い実行中
	CheckoutMarkerStatusPending CheckoutMarkerStatus = "PENDING"
	// 支払い済み・カート未クリア
	CheckoutMarkerStatusPaid CheckoutMarkerStatus = "PAID"
	// クリアまで完了
	CheckoutMarkerStatusCleared CheckoutMarkerStatus = "CLEARED"
	// 支払い失敗（同じキーで再試行できる）
	CheckoutMarkerStatusFailed CheckoutMarkerStatus = "FAILED"
)

type CheckoutMethod string

const (
	CheckoutMethodBank   CheckoutMethod = "bank"
	CheckoutMethodCrypto CheckoutMethod = "crypto"
)

// チェックアウト1回分の耐久マーカー。
// (user_id, idempotency_key) でユニーク。PAIDで止まった行は次回ロード時に回収する。
type CheckoutMarker struct {
	ID             int64                `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64                `gorm:"not null;uniqueIndex:idx_checkout_user_key" json:"user_id"`
	IdempotencyKey string               `gorm:"type:varchar(255);not null;uniqueIndex:idx_checkout_user_key" json:"idempotency_key"`
	CartID         int64                `gorm:"not null;index" json:"cart_id"`
	Method         CheckoutMethod       `gorm:"type:varchar(20);not null" json:"method"`
	AmountMinor    int64                `gorm:"not null" json:"amount_minor"`
	Status         CheckoutMarkerStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TxHash         string               `gorm:"type:varchar(80)" json:"tx_hash"`
	CreatedAt      time.Time            `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time            `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
