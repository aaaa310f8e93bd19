package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 決済プロバイダは常に成功するスタブ。
const PaymentProviderSimulated = "simulated"

// 注文1件につき決済1件。statusは遷移のたびに注文側へ同期する。
type Payment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	Provider      string          `gorm:"type:varchar(50);not null" json:"provider"`
	Status        Status          `gorm:"type:varchar(20);not null;index" json:"status"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PlaygroundURL *string         `gorm:"type:varchar(512)" json:"playground_url"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
