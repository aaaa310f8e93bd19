package usecase

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// カート行の書き込みはここだけが持つ。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// 商品表示データ込みのカート明細
type CartItemResponse struct {
	ProductID int64                `json:"product_id"`
	Name      string               `json:"name"`
	Price     decimal.Decimal      `json:"price"`
	Quantity  int64                `json:"quantity"`
	Images    []model.ProductImage `json:"images"`
}

// EnsureCart はカートIDの取得（無ければ作る）。2回呼んでも同じIDが返る。
func (u *CartUsecase) EnsureCart(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return cart.ID, nil
}

// AddProduct は数量デルタの適用。changeは増減であって絶対値ではない。
// 適用後の数量が0以下なら行ごと消える。
func (u *CartUsecase) AddProduct(ctx context.Context, userID int64, productID int64, change int64) (model.CartChange, error) {
	if userID <= 0 {
		return model.CartChange{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.CartChange{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//商品チェック
	exists, err := u.productRepo.Exists(ctx, productID)
	if err != nil {
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !exists {
		return model.CartChange{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	//カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//デルタ適用は行ロック付きでrepoにまとめて任せる
	cartChange, err := u.cartRepo.ApplyQuantityDelta(ctx, cart.ID, productID, change)
	if err != nil {
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return cartChange, nil
}

// RemoveProduct はデルタではなく無条件で行を消す。
// 行が無ければ何もしないでREMOVEDを返す。
func (u *CartUsecase) RemoveProduct(ctx context.Context, userID int64, productID int64) (model.CartChange, error) {
	if userID <= 0 {
		return model.CartChange{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return model.CartChange{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	exists, err := u.productRepo.Exists(ctx, productID)
	if err != nil {
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !exists {
		return model.CartChange{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		//カートが無いなら消すものも無い
		return model.CartChange{Outcome: model.CartLineRemoved}, nil
	}
	if err != nil {
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	line, err := u.cartRepo.FindLine(ctx, cart.ID, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CartChange{Outcome: model.CartLineRemoved}, nil
	}
	if err != nil {
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.DeleteLine(ctx, cart.ID, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.CartChange{Outcome: model.CartLineRemoved}, nil
		}
		return model.CartChange{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return model.CartChange{Outcome: model.CartLineRemoved, Line: &line}, nil
}

// ListItems は商品表示データ込みでカートの中身を返す。
// カートが無ければ空で返す（エラーにしない）。
func (u *CartUsecase) ListItems(ctx context.Context, userID int64) ([]CartItemResponse, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return []CartItemResponse{}, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines, err := u.cartRepo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]CartItemResponse, 0, len(lines))
	for _, line := range lines {
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			//削除済み商品の行は表示から外す
			continue
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items = append(items, CartItemResponse{
			ProductID: line.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
			Images:    p.Images,
		})
	}

	return items, nil
}

// Clear はカートの明細を全削除。カートが無ければ何もしない。
func (u *CartUsecase) Clear(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.DeleteAllLines(ctx, cart.ID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
