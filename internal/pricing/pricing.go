package pricing

import (
	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// Total は price×quantity の合計を返す。
// 丸めはしない。端数はdecimalのまま保持する。
func Total(items []model.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		line := it.Price.Mul(decimal.NewFromInt(it.Quantity))
		total = total.Add(line)
	}
	return total
}
