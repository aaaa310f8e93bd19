package model

import "time"

// カートの明細。(cart_id, product_id)で一意。
// quantityは必ず正。0以下になる行は保存せず削除する。
type CartLine struct {
	CartID    int64     `gorm:"primaryKey;autoIncrement:false" json:"cart_id"`
	ProductID int64     `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}

// 数量デルタ適用の結果。nullの使い分けではなくタグ付きで返す。
type CartOutcome string

const (
	//行が作成または更新された
	CartLineUpdated CartOutcome = "UPDATED"
	//行が削除された（または元々無かった）
	CartLineRemoved CartOutcome = "REMOVED"
)

type CartChange struct {
	Outcome CartOutcome `json:"outcome"`
	//UPDATEDのときは必ず入る。REMOVEDでは削除前の行（無ければnil）。
	Line *CartLine `json:"line,omitempty"`
}
