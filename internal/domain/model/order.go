package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// チェックアウト確定時のスナップショット。
// 作成後はstatus以外を変更しない。totalも再計算しない。
type Order struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64           `gorm:"not null;index" json:"user_id"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Customer *string         `gorm:"type:varchar(255)" json:"customer"`
	Status   Status          `gorm:"type:varchar(20);not null;index" json:"status"`

	Lines   []OrderLine `gorm:"foreignKey:OrderID" json:"items"`
	Payment *Payment    `gorm:"foreignKey:OrderID" json:"payment,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
