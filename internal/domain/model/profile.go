package model

import "time"

// ユーザーにつき1行。wallet_addressは暗号資産決済で再利用する。
type Profile struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	DisplayName       string    `gorm:"type:varchar(255)" json:"display_name"`
	AvatarURL         string    `gorm:"type:text" json:"avatar_url"`
	WalletAddress     string    `gorm:"type:varchar(64);column:wallet_address" json:"wallet_address"`
	PreferredCurrency string    `gorm:"type:varchar(10);not null;default:'USD'" json:"preferred_currency"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
