package usecase

import (
	"context"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// =====================
// In-memory fakes（リポジトリ契約どおりに動く）
// =====================

type memCartRepo struct {
	carts  map[int64]model.Cart // userID -> ACTIVEカート
	items  *memCartItemRepo
	nextID int64
}

func newMemCartRepo(items *memCartItemRepo) *memCartRepo {
	return &memCartRepo{carts: map[int64]model.Cart{}, items: items, nextID: 1}
}

func (m *memCartRepo) GetOrCreateActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	c := model.Cart{ID: m.nextID, UserID: userID, Status: model.CartStatusActive}
	m.nextID++
	m.carts[userID] = c
	return c, nil
}

func (m *memCartRepo) FindActiveByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	return model.Cart{}, repo.ErrNotFound
}

func (m *memCartRepo) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	return nil
}

func (m *memCartRepo) Clear(ctx context.Context, cartID int64) error {
	for id, it := range m.items.items {
		if it.CartID == cartID {
			delete(m.items.items, id)
		}
	}
	return nil
}

type memCartItemRepo struct {
	items  map[int64]model.CartItem
	owner  map[int64]int64 // cartID -> userID
	nextID int64
}

func newMemCartItemRepo() *memCartItemRepo {
	return &memCartItemRepo{items: map[int64]model.CartItem{}, owner: map[int64]int64{}, nextID: 1}
}

func (m *memCartItemRepo) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var out []model.CartItem
	for id := int64(1); id < m.nextID; id++ {
		if it, ok := m.items[id]; ok && it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

// 同一商品は数量加算（GORM実装と同じ約束）
func (m *memCartItemRepo) UpsertByCartAndProduct(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceSnapshot int64) error {
	for id, it := range m.items {
		if it.CartID == cartID && it.ProductID == productID {
			it.Quantity += addQty
			m.items[id] = it
			return nil
		}
	}
	m.items[m.nextID] = model.CartItem{
		ID:                m.nextID,
		CartID:            cartID,
		ProductID:         productID,
		Quantity:          addQty,
		UnitPriceSnapshot: unitPriceSnapshot,
	}
	m.nextID++
	return nil
}

func (m *memCartItemRepo) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	it, ok := m.items[cartItemID]
	if !ok {
		return repo.ErrNotFound
	}
	it.Quantity = qty
	m.items[cartItemID] = it
	return nil
}

func (m *memCartItemRepo) DeleteByID(ctx context.Context, cartItemID int64) error {
	if _, ok := m.items[cartItemID]; !ok {
		return repo.ErrNotFound
	}
	delete(m.items, cartItemID)
	return nil
}

func (m *memCartItemRepo) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	it, ok := m.items[cartItemID]
	if !ok {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (m *memCartItemRepo) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	it, ok := m.items[cartItemID]
	if !ok {
		return false, nil
	}
	return m.owner[it.CartID] == userID, nil
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) SetActive(ctx context.Context, productID int64, isActive bool) error {
	panic("not used in CartUsecase tests")
}

func (m *CartProductRepoMock) SoftDelete(ctx context.Context, productID int64) error {
	panic("not used in CartUsecase tests")
}

type CartMarkerRepoMock struct{ mock.Mock }

func (m *CartMarkerRepoMock) Create(ctx context.Context, mk model.CheckoutMarker) (model.CheckoutMarker, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMarkerRepoMock) FindByUserAndKey(ctx context.Context, userID int64, key string) (model.CheckoutMarker, bool, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMarkerRepoMock) UpdateStatus(ctx context.Context, markerID int64, status model.CheckoutMarkerStatus, txHash string) error {
	args := m.Called(ctx, markerID, status, txHash)
	return args.Error(0)
}

func (m *CartMarkerRepoMock) RearmFailed(ctx context.Context, markerID int64, cartID int64, method model.CheckoutMethod, amountMinor int64) (bool, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMarkerRepoMock) ListPaidByUserID(ctx context.Context, userID int64) ([]model.CheckoutMarker, error) {
	args := m.Called(ctx, userID)
	markers, _ := args.Get(0).([]model.CheckoutMarker)
	return markers, args.Error(1)
}

// =====================
// テスト本体
// =====================

func newCartUsecaseForTest(t *testing.T) (*CartUsecase, *memCartRepo, *memCartItemRepo, *CartProductRepoMock, *CartMarkerRepoMock) {
	t.Helper()

	items := newMemCartItemRepo()
	carts := newMemCartRepo(items)
	products := new(CartProductRepoMock)
	markers := new(CartMarkerRepoMock)
	markers.On("ListPaidByUserID", mock.Anything, mock.Anything).Return([]model.CheckoutMarker{}, nil).Maybe()

	uc := NewCartUsecase(carts, items, products, markers, zap.NewNop())
	return uc, carts, items, products, markers
}

func activeProduct(id int64, price int64) model.Product {
	return model.Product{ID: id, Name: "p", Price: price, IsActive: true}
}

func TestCartUsecase_AddTwice_MergesIntoOneLine(t *testing.T) {
	ctx := context.Background()
	uc, carts, items, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(7)).Return(activeProduct(7, 1000), nil)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 1})
	assert.NoError(t, err)

	out, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 7, Quantity: 1})
	assert.NoError(t, err)

	//明細は1本、数量は2
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, int64(2000), out.Total)

	_ = carts
	_ = items
}

func TestCartUsecase_Total_SumOfSnapshotTimesQuantity(t *testing.T) {
	ctx := context.Background()
	uc, _, _, products, _ := newCartUsecaseForTest(t)

	// {price:10.00, qty:2} と {price:5.50, qty:1} → 25.50
	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 1000), nil)
	products.On("FindByID", mock.Anything, int64(2)).Return(activeProduct(2, 550), nil)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 2})
	assert.NoError(t, err)
	out, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 2, Quantity: 1})
	assert.NoError(t, err)

	assert.Equal(t, int64(2550), out.Total)

	//再計算しても同じ値
	again, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2550), again.Total)
}

func TestCartUsecase_UpdateQuantity_ZeroRemovesItem(t *testing.T) {
	ctx := context.Background()
	uc, _, items, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 500), nil)

	first, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)
	itemID := first.Items[0].ID
	items.owner[first.CartID] = 1

	out, err := uc.UpdateCartItem(ctx, 1, itemID, UpdateCartItemInput{Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, int64(0), out.Total)

	//2回目も無害
	out2, err := uc.UpdateCartItem(ctx, 1, itemID, UpdateCartItemInput{Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, out2.Items)
}

func TestCartUsecase_UpdateQuantity_NegativeAlsoRemoves(t *testing.T) {
	ctx := context.Background()
	uc, _, items, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 500), nil)

	first, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 1})
	assert.NoError(t, err)
	items.owner[first.CartID] = 1

	out, err := uc.UpdateCartItem(ctx, 1, first.Items[0].ID, UpdateCartItemInput{Quantity: -5})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestCartUsecase_UpdateQuantity_PersistsPositive(t *testing.T) {
	ctx := context.Background()
	uc, _, items, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 300), nil)

	first, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 1})
	assert.NoError(t, err)
	items.owner[first.CartID] = 1

	out, err := uc.UpdateCartItem(ctx, 1, first.Items[0].ID, UpdateCartItemInput{Quantity: 4})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), out.Items[0].Quantity)
	assert.Equal(t, int64(1200), out.Total)
}

func TestCartUsecase_DeleteNonexistentItem_IsNoOp(t *testing.T) {
	ctx := context.Background()
	uc, _, _, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrNotFound).Maybe()

	out, err := uc.DeleteCartItem(ctx, 1, 999)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
}

// 追加後に商品が非公開になっても、表示合計は請求される集合と一致し続ける
func TestCartUsecase_Total_KeepsDeactivatedItems(t *testing.T) {
	ctx := context.Background()
	uc, _, _, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 1000), nil)
	//追加時は公開、その後に非公開へ
	products.On("FindByID", mock.Anything, int64(2)).Return(activeProduct(2, 550), nil).Times(2)
	products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, Name: "p", Price: 550, IsActive: false}, nil)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 2})
	assert.NoError(t, err)
	_, err = uc.AddToCart(ctx, 1, AddCartInput{ProductID: 2, Quantity: 1})
	assert.NoError(t, err)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)

	//非公開でも明細は残り、合計はΣ(snapshot×qty)のまま
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(2550), out.Total)

	//チェックアウトが請求する額と同じ計算
	var charged int64
	for _, it := range out.Items {
		charged += it.Price * it.Quantity
	}
	assert.Equal(t, charged, out.Total)
}

// 商品行が消えていてもsnapshotで明細・合計を出す
func TestCartUsecase_Total_KeepsItemsWithMissingProductRow(t *testing.T) {
	ctx := context.Background()
	uc, _, _, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 300), nil).Times(2)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 3})
	assert.NoError(t, err)

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "", out.Items[0].Name)
	assert.Equal(t, int64(900), out.Total)
}

// 商品参照の失敗は黙って落とさずエラーで返す
func TestCartUsecase_ProductLookupFailure_Surfaced(t *testing.T) {
	ctx := context.Background()

	items := newMemCartItemRepo()
	carts := newMemCartRepo(items)
	products := new(CartProductRepoMock)
	markers := new(CartMarkerRepoMock)
	markers.On("ListPaidByUserID", mock.Anything, mock.Anything).Return([]model.CheckoutMarker{}, nil)

	cart, err := carts.GetOrCreateActiveByUserID(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, items.UpsertByCartAndProduct(ctx, cart.ID, 1, 1, 500))

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{}, assert.AnError)

	uc := NewCartUsecase(carts, items, products, markers, zap.NewNop())

	_, err = uc.GetCart(ctx, 1)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 500, he.Status)
}

func TestCartUsecase_AddInactiveProduct_Rejected(t *testing.T) {
	ctx := context.Background()
	uc, _, _, products, _ := newCartUsecaseForTest(t)

	products.On("FindByID", mock.Anything, int64(9)).Return(model.Product{ID: 9, IsActive: false}, nil)

	_, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 9, Quantity: 1})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestCartUsecase_GetCart_ReconcilesPaidMarkers(t *testing.T) {
	ctx := context.Background()

	items := newMemCartItemRepo()
	carts := newMemCartRepo(items)
	products := new(CartProductRepoMock)
	markers := new(CartMarkerRepoMock)

	products.On("FindByID", mock.Anything, int64(1)).Return(activeProduct(1, 100), nil)

	uc := NewCartUsecase(carts, items, products, markers, zap.NewNop())

	//支払い済みで明細が残っているカート
	first, err := uc.AddToCart(ctx, 1, AddCartInput{ProductID: 1, Quantity: 2})
	assert.NoError(t, err)
	assert.NotEmpty(t, first.Items)

	markers.On("ListPaidByUserID", mock.Anything, int64(1)).
		Return([]model.CheckoutMarker{{ID: 10, CartID: first.CartID, Status: model.CheckoutMarkerStatusPaid}}, nil).Once()
	markers.On("UpdateStatus", mock.Anything, int64(10), model.CheckoutMarkerStatusCleared, "").Return(nil).Once()

	out, err := uc.GetCart(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	markers.AssertExpectations(t)
}
