package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type FavoriteUsecase struct {
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewFavoriteUsecase(
	favoriteRepo repo.FavoriteRepository,
	productRepo repo.ProductRepository,
) *FavoriteUsecase {
	return &FavoriteUsecase{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

// 商品表示データ込みのお気に入り
type FavoriteItemResponse struct {
	ID      int64         `json:"id"`
	Product model.Product `json:"product"`
}

func (u *FavoriteUsecase) ListFavorites(ctx context.Context, userID int64) ([]FavoriteItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	favs, err := u.favoriteRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]FavoriteItemResponse, 0, len(favs))
	for _, f := range favs {
		p, err := u.productRepo.FindByID(ctx, f.ProductID)
		if err != nil {
			continue
		}
		items = append(items, FavoriteItemResponse{ID: f.ID, Product: p})
	}

	return items, nil
}

func (u *FavoriteUsecase) AddFavorite(ctx context.Context, userID int64, productID int64) (model.Favorite, error) {
	if userID <= 0 {
		return model.Favorite{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.Favorite{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	exists, err := u.productRepo.Exists(ctx, productID)
	if err != nil {
		return model.Favorite{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !exists {
		return model.Favorite{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	fav, err := u.favoriteRepo.Add(ctx, userID, productID)
	if err != nil {
		return model.Favorite{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return fav, nil
}

func (u *FavoriteUsecase) RemoveFavorite(ctx context.Context, userID int64, productID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if err := u.favoriteRepo.Remove(ctx, userID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
