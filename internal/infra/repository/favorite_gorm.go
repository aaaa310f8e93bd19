package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

func (r *FavoriteGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error) {
	var items []model.Favorite

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Favorite{}, err
	}
	return items, nil
}

// 二重追加は既存行を返すだけにする
func (r *FavoriteGormRepository) Add(ctx context.Context, userID int64, productID int64) (model.Favorite, error) {
	fav := model.Favorite{
		UserID:    userID,
		ProductID: productID,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		return model.Favorite{}, err
	}

	if fav.ID == 0 {
		//既にあったので拾い直す
		if err := r.db.WithContext(ctx).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&fav).Error; err != nil {
			return model.Favorite{}, err
		}
	}

	return fav, nil
}

func (r *FavoriteGormRepository) Remove(ctx context.Context, userID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
