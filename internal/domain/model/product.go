package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Price       decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	Mark        string           `gorm:"type:varchar(255)" json:"mark"`
	OldPrice    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"old_price"`
	CategoryID  int64            `gorm:"not null;index" json:"category_id"`
	Images      []ProductImage   `gorm:"foreignKey:ProductID" json:"images"`
	CreatedAt   time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
