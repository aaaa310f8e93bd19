package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	//明細と決済込み、createdAt降順
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	// PENDINGの注文と明細スナップショットを作る。itemsは渡されたまま保存する。
	Create(ctx context.Context, total decimal.Decimal, items []model.LineItem, userID int64, customer *string) (model.Order, error)

	CreatePayment(ctx context.Context, orderID int64, amount decimal.Decimal) (model.Payment, error)
	FindPaymentByID(ctx context.Context, paymentID int64) (model.Payment, error)
	UpdatePaymentStatus(ctx context.Context, paymentID int64, status model.Status) (model.Payment, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.Status) error
}
