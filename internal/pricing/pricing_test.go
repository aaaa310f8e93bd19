package pricing

import (
	"testing"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal_Empty(t *testing.T) {
	total := Total(nil)
	assert.True(t, total.Equal(decimal.Zero))
}

func TestTotal_SumsPriceTimesQuantity(t *testing.T) {
	items := []model.LineItem{
		{ProductID: 1, Price: decimal.NewFromInt(50), Quantity: 1},
		{ProductID: 2, Price: decimal.NewFromInt(25), Quantity: 2},
	}

	total := Total(items)
	assert.True(t, total.Equal(decimal.NewFromInt(100)), "total=%s", total)
}

func TestTotal_KeepsFractionalCents(t *testing.T) {
	price, err := decimal.NewFromString("19.99")
	assert.NoError(t, err)

	items := []model.LineItem{
		{ProductID: 1, Price: price, Quantity: 3},
	}

	want, err := decimal.NewFromString("59.97")
	assert.NoError(t, err)
	assert.True(t, Total(items).Equal(want))
}

func TestTotal_ZeroQuantityLineContributesNothing(t *testing.T) {
	items := []model.LineItem{
		{ProductID: 1, Price: decimal.NewFromInt(10), Quantity: 0},
		{ProductID: 2, Price: decimal.NewFromInt(5), Quantity: 4},
	}

	assert.True(t, Total(items).Equal(decimal.NewFromInt(20)))
}
