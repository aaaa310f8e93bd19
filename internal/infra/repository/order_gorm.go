package repository

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 明細と決済込みで新しい順に返す
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Preload("Lines").
		Preload("Payment").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}

	return orders, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order

	err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payment").
		Where("id = ?", orderID).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// PENDINGの注文と明細スナップショットをまとめて作成する
func (r *OrderGormRepository) Create(ctx context.Context, total decimal.Decimal, items []model.LineItem, userID int64, customer *string) (model.Order, error) {

	lines := make([]model.OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, model.OrderLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	order := model.Order{
		UserID:   userID,
		Total:    total,
		Customer: customer,
		Status:   model.StatusPending,
		Lines:    lines,
	}

	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// スタブプロバイダの決済をPENDINGで作成する
func (r *OrderGormRepository) CreatePayment(ctx context.Context, orderID int64, amount decimal.Decimal) (model.Payment, error) {

	//スタブのサンドボックスURL
	playground := fmt.Sprintf("https://pay.simulated.local/playground/%s", uuid.NewString())

	payment := model.Payment{
		OrderID:       orderID,
		Provider:      model.PaymentProviderSimulated,
		Status:        model.StatusPending,
		Amount:        amount,
		PlaygroundURL: &playground,
	}

	if err := r.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return model.Payment{}, err
	}
	return payment, nil
}

// 行ロック付きで取得。トランザクション内で読めば
// 同じ決済への同時ステータス更新は片方しか遷移チェックを通れない。
func (r *OrderGormRepository) FindPaymentByID(ctx context.Context, paymentID int64) (model.Payment, error) {
	var p model.Payment

	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", paymentID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *OrderGormRepository) UpdatePaymentStatus(ctx context.Context, paymentID int64, status model.Status) (model.Payment, error) {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status)

	if res.Error != nil {
		return model.Payment{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Payment{}, repo.ErrNotFound
	}

	return r.FindPaymentByID(ctx, paymentID)
}

func (r *OrderGormRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status model.Status) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
