package repository

import (
	"context"

	"app/internal/domain/model"
)

type FavoriteRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Favorite, error)
	Add(ctx context.Context, userID int64, productID int64) (model.Favorite, error)
	Remove(ctx context.Context, userID int64, productID int64) error
}
