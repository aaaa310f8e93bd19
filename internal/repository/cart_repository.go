package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// 無ければ作る。2回呼んでも同じカートが返る。
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	FindLine(ctx context.Context, cartID int64, productID int64) (model.CartLine, error)
	UpsertLine(ctx context.Context, cartID int64, productID int64, qty int64) (model.CartLine, error)
	DeleteLine(ctx context.Context, cartID int64, productID int64) error
	ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error)
	DeleteAllLines(ctx context.Context, cartID int64) error

	// 行ロック付きトランザクションでデルタを適用する。
	// 読み→書きを1往復にまとめて同時addの上書き消失を防ぐ。
	ApplyQuantityDelta(ctx context.Context, cartID int64, productID int64, delta int64) (model.CartChange, error)
}
