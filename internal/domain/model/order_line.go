package model

import "github.com/shopspring/decimal"

// 購入時点の商品コピー。
// 後から商品が編集・削除されても過去の明細は変わらない。
type OrderLine struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64           `gorm:"not null;index" json:"order_id"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"type:varchar(512)" json:"image"`
}

// チェックアウト入力の1行。呼び出し側が価格込みで渡す。
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Image     string          `json:"image"`
}
