package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {

	var cart model.Cart

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&cart).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newCart := model.Cart{
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := tx.Create(&newCart).Error; err != nil {
			//同時作成でuniqueに当たったらもう一回探す
			retryErr := tx.
				Where("user_id = ?", userID).
				First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// (cart, product)の明細を取得
func (r *CartGormRepository) FindLine(ctx context.Context, cartID int64, productID int64) (model.CartLine, error) {
	var line model.CartLine

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&line).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartLine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

// 明細を作成または数量を上書き
func (r *CartGormRepository) UpsertLine(ctx context.Context, cartID int64, productID int64, qty int64) (model.CartLine, error) {
	if qty <= 0 {
		return model.CartLine{}, errors.New("invalid quantity")
	}

	line := model.CartLine{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  qty,
		AddedAt:   time.Now(),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": qty}),
		}).
		Create(&line).Error

	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

// 明細を削除
func (r *CartGormRepository) DeleteLine(ctx context.Context, cartID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartLine{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カート明細を一覧取得
func (r *CartGormRepository) ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("product_id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// 指定カートの明細を全削除。0件でもエラーにしない。
func (r *CartGormRepository) DeleteAllLines(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartLine{}).Error
}

// 数量デルタを行ロック付きで適用する。
// 読み→計算→書きを同一トランザクションにまとめて、同時実行の上書き消失を防ぐ。
func (r *CartGormRepository) ApplyQuantityDelta(ctx context.Context, cartID int64, productID int64, delta int64) (model.CartChange, error) {

	var change model.CartChange

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line model.CartLine

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&line).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			if delta <= 0 {
				//元々無いのでno-op
				change = model.CartChange{Outcome: model.CartLineRemoved}
				return nil
			}

			newLine := model.CartLine{
				CartID:    cartID,
				ProductID: productID,
				Quantity:  delta,
				AddedAt:   time.Now(),
			}
			if err := tx.Create(&newLine).Error; err != nil {
				return err
			}

			change = model.CartChange{Outcome: model.CartLineUpdated, Line: &newLine}
			return nil
		}
		if err != nil {
			return err
		}

		newQty := line.Quantity + delta

		if newQty <= 0 {
			//0以下は行ごと消す
			if err := tx.
				Where("cart_id = ? AND product_id = ?", cartID, productID).
				Delete(&model.CartLine{}).Error; err != nil {
				return err
			}

			change = model.CartChange{Outcome: model.CartLineRemoved}
			return nil
		}

		res := tx.Model(&model.CartLine{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", newQty)

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		line.Quantity = newQty
		change = model.CartChange{Outcome: model.CartLineUpdated, Line: &line}
		return nil
	})

	if err != nil {
		return model.CartChange{}, err
	}
	return change, nil
}
