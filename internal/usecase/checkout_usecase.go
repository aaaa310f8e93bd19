package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// CheckoutUsecase は価格付きの入力をそのまま注文＋決済に変換する。
// itemsは呼び出し側の提示値で、カタログとの突き合わせはしない。
type CheckoutUsecase struct {
	tx repo.TransactionManager
}

func NewCheckoutUsecase(tx repo.TransactionManager) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx}
}

// CreateCheckout は注文作成・決済作成・カートクリアを1トランザクションで行う。
// 途中で失敗したら全部ロールバックされ、注文だけが残ることはない。
func (u *CheckoutUsecase) CreateCheckout(ctx context.Context, items []model.LineItem, userID int64, customerName string) (model.Payment, error) {
	if userID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(items) == 0 {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "empty items")
	}
	for _, it := range items {
		if it.ProductID <= 0 {
			return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if it.Quantity <= 0 {
			return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
		if it.Price.IsNegative() {
			return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
	}

	total := pricing.Total(items)

	var customer *string
	if name := strings.TrimSpace(customerName); name != "" {
		customer = &name
	}

	var out model.Payment

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文＋明細スナップショット作成
		order, err := r.Orders().Create(ctx, total, items, userID, customer)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//決済作成（amountは必ず注文のtotal）
		payment, err := r.Orders().CreatePayment(ctx, order.ID, order.Total)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする。カートが無いユーザーはそのまま通す。
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err == nil {
			if err := r.Carts().DeleteAllLines(ctx, cart.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		out = payment
		return nil
	})

	if err != nil {
		return model.Payment{}, err
	}
	return out, nil
}

// UpdatePayment は決済のステータスを更新し、同じ値を注文側にも反映する。
// 許される遷移は PENDING→PAID / PENDING→CANCELLED だけ。
func (u *CheckoutUsecase) UpdatePayment(ctx context.Context, paymentID int64, newStatus model.Status) (model.Payment, error) {
	if paymentID <= 0 {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	if !newStatus.Valid() {
		return model.Payment{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out model.Payment

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		payment, err := r.Orders().FindPaymentByID(ctx, paymentID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "payment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !payment.Status.CanTransitionTo(newStatus) {
			return NewHTTPError(http.StatusBadRequest, "illegal status transition")
		}

		updated, err := r.Orders().UpdatePaymentStatus(ctx, paymentID, newStatus)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文側も同じステータスへ
		if err := r.Orders().UpdateOrderStatus(ctx, payment.OrderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = updated
		return nil
	})

	if err != nil {
		return model.Payment{}, err
	}
	return out, nil
}

// GetAllOrders は明細と決済込みで、新しい順に返す。
func (u *CheckoutUsecase) GetAllOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var orders []model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		list, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		orders = list
		return nil
	})

	if err != nil {
		return nil, err
	}
	return orders, nil
}
