package unit

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindLine(ctx context.Context, cartID int64, productID int64) (model.CartLine, error) {
	args := m.Called(ctx, cartID, productID)
	l, _ := args.Get(0).(model.CartLine)
	return l, args.Error(1)
}

func (m *CartRepoMock) UpsertLine(ctx context.Context, cartID int64, productID int64, qty int64) (model.CartLine, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartRepoMock) DeleteLine(ctx context.Context, cartID int64, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

func (m *CartRepoMock) ListLines(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	args := m.Called(ctx, cartID)
	lines, _ := args.Get(0).([]model.CartLine)
	return lines, args.Error(1)
}

func (m *CartRepoMock) DeleteAllLines(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *CartRepoMock) ApplyQuantityDelta(ctx context.Context, cartID int64, productID int64, delta int64) (model.CartChange, error) {
	args := m.Called(ctx, cartID, productID, delta)
	ch, _ := args.Get(0).(model.CartChange)
	return ch, args.Error(1)
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) AttachImage(ctx context.Context, productID int64, url string) (model.ProductImage, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) DeleteImage(ctx context.Context, imageID int64) error {
	panic("not used in CartUsecase tests")
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok, "expected HTTPError, got %v", err)
	if ok {
		assert.Equal(t, status, he.Status)
	}
}

// =====================
// EnsureCart
// =====================

func TestCartUsecase_EnsureCart_Idempotent(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 7, UserID: 1}, nil).Twice()

	first, err := uc.EnsureCart(context.Background(), 1)
	assert.NoError(t, err)

	second, err := uc.EnsureCart(context.Background(), 1)
	assert.NoError(t, err)

	//2回呼んでも同じカートID
	assert.Equal(t, first, second)
	cartRepo.AssertExpectations(t)
}

// =====================
// AddProduct
// =====================

func TestCartUsecase_AddProduct_ProductMissing(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	productRepo.On("Exists", mock.Anything, int64(99)).Return(false, nil)

	_, err := uc.AddProduct(context.Background(), 1, 99, 1)
	assertHTTPStatus(t, err, http.StatusNotFound)
	cartRepo.AssertNotCalled(t, "ApplyQuantityDelta", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddProduct_CreatesCartAndLine(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	productRepo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("ApplyQuantityDelta", mock.Anything, int64(1), int64(5), int64(1)).
		Return(model.CartChange{
			Outcome: model.CartLineUpdated,
			Line:    &model.CartLine{CartID: 1, ProductID: 5, Quantity: 1},
		}, nil)

	change, err := uc.AddProduct(context.Background(), 1, 5, 1)
	assert.NoError(t, err)
	assert.Equal(t, model.CartLineUpdated, change.Outcome)
	if assert.NotNil(t, change.Line) {
		assert.Equal(t, int64(5), change.Line.ProductID)
		assert.Equal(t, int64(1), change.Line.Quantity)
	}
	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_AddProduct_NegativeDeltaDecrements(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	productRepo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)

	//quantity 2 の行に -1 → 1
	cartRepo.On("ApplyQuantityDelta", mock.Anything, int64(1), int64(5), int64(-1)).
		Return(model.CartChange{
			Outcome: model.CartLineUpdated,
			Line:    &model.CartLine{CartID: 1, ProductID: 5, Quantity: 1},
		}, nil)

	change, err := uc.AddProduct(context.Background(), 1, 5, -1)
	assert.NoError(t, err)
	assert.Equal(t, model.CartLineUpdated, change.Outcome)
	assert.Equal(t, int64(1), change.Line.Quantity)
}

func TestCartUsecase_AddProduct_DeltaToZeroRemovesLine(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	productRepo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	cartRepo.On("GetOrCreateByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("ApplyQuantityDelta", mock.Anything, int64(1), int64(5), int64(-1)).
		Return(model.CartChange{Outcome: model.CartLineRemoved}, nil)

	change, err := uc.AddProduct(context.Background(), 1, 5, -1)
	assert.NoError(t, err)
	assert.Equal(t, model.CartLineRemoved, change.Outcome)
	assert.Nil(t, change.Line)
}

// =====================
// RemoveProduct
// =====================

func TestCartUsecase_RemoveProduct_NoCartIsNoop(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	productRepo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{}, repo.ErrNotFound)

	change, err := uc.RemoveProduct(context.Background(), 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, model.CartLineRemoved, change.Outcome)
	assert.Nil(t, change.Line)
	cartRepo.AssertNotCalled(t, "DeleteLine", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_RemoveProduct_ReturnsDeletedLine(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	productRepo.On("Exists", mock.Anything, int64(5)).Return(true, nil)
	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("FindLine", mock.Anything, int64(1), int64(5)).
		Return(model.CartLine{CartID: 1, ProductID: 5, Quantity: 3}, nil)
	cartRepo.On("DeleteLine", mock.Anything, int64(1), int64(5)).Return(nil)

	change, err := uc.RemoveProduct(context.Background(), 1, 5)
	assert.NoError(t, err)
	assert.Equal(t, model.CartLineRemoved, change.Outcome)
	if assert.NotNil(t, change.Line) {
		assert.Equal(t, int64(3), change.Line.Quantity)
	}
	cartRepo.AssertExpectations(t)
}

// =====================
// ListItems / Clear
// =====================

func TestCartUsecase_ListItems_NoCartReturnsEmpty(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{}, repo.ErrNotFound)

	items, err := uc.ListItems(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartUsecase_ListItems_JoinsProductData(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("ListLines", mock.Anything, int64(1)).
		Return([]model.CartLine{{CartID: 1, ProductID: 5, Quantity: 2}}, nil)
	productRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{
			ID:    5,
			Name:  "Creatina",
			Price: decimal.NewFromInt(100),
			Images: []model.ProductImage{
				{ID: 1, ProductID: 5, URL: "https://img/1"},
			},
		}, nil)

	items, err := uc.ListItems(context.Background(), 1)
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "Creatina", items[0].Name)
		assert.Equal(t, int64(2), items[0].Quantity)
		assert.True(t, items[0].Price.Equal(decimal.NewFromInt(100)))
		assert.Len(t, items[0].Images, 1)
	}
}

func TestCartUsecase_ListItems_SkipsDeletedProducts(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("ListLines", mock.Anything, int64(1)).
		Return([]model.CartLine{
			{CartID: 1, ProductID: 5, Quantity: 2},
			{CartID: 1, ProductID: 6, Quantity: 1},
		}, nil)

	//5は削除済み、6は生きている
	productRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{}, repo.ErrNotFound)
	productRepo.On("FindByID", mock.Anything, int64(6)).
		Return(model.Product{ID: 6, Name: "BCAA", Price: decimal.NewFromInt(25)}, nil)

	items, err := uc.ListItems(context.Background(), 1)
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, int64(6), items[0].ProductID)
	}
}

func TestCartUsecase_ListItems_ProductLookupFailure(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("ListLines", mock.Anything, int64(1)).
		Return([]model.CartLine{{CartID: 1, ProductID: 5, Quantity: 2}}, nil)

	//NotFound以外のエラーは握りつぶさず500
	productRepo.On("FindByID", mock.Anything, int64(5)).
		Return(model.Product{}, assert.AnError)

	_, err := uc.ListItems(context.Background(), 1)
	assertHTTPStatus(t, err, http.StatusInternalServerError)
}

func TestCartUsecase_Clear_NoCartIsNoop(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{}, repo.ErrNotFound)

	err := uc.Clear(context.Background(), 1)
	assert.NoError(t, err)
	cartRepo.AssertNotCalled(t, "DeleteAllLines", mock.Anything, mock.Anything)
}

func TestCartUsecase_Clear_DeletesAllLines(t *testing.T) {
	cartRepo := new(CartRepoMock)
	productRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, productRepo)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 1, UserID: 1}, nil)
	cartRepo.On("DeleteAllLines", mock.Anything, int64(1)).Return(nil)

	err := uc.Clear(context.Background(), 1)
	assert.NoError(t, err)
	cartRepo.AssertExpectations(t)
}
