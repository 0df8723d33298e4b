package usecase

import (
	"context"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SetActive(ctx context.Context, productID int64, isActive bool) error {
	args := m.Called(ctx, productID, isActive)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]model.Category)
	return cats, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, categoryID int64) (model.Category, error) {
	panic("not used in ProductUsecase tests")
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(model.Category)
	return out, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) DeleteByID(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func TestProductUsecase_ListPublicProducts_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("ListPublic", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 20, Sort: "new"}).
		Return([]model.Product{{ID: 1, Name: "a", Price: 1000, IsActive: true}}, int64(1), nil)

	uc := NewProductUsecase(pRepo, new(CategoryRepoMock))

	out, err := uc.ListPublicProducts(context.Background(), ListProductsInput{Page: 1, Limit: 20, Sort: "new"})

	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Total)
	assert.Equal(t, 1, out.Page)
}

func TestProductUsecase_ListPublicProducts_InvalidPaging(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock))

	_, err := uc.ListPublicProducts(context.Background(), ListProductsInput{Page: 0, Limit: 20})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)

	_, err = uc.ListPublicProducts(context.Background(), ListProductsInput{Page: 1, Limit: 101})
	he, ok = AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestProductUsecase_GetPublicProduct_InactiveHidden(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "hidden", IsActive: false}, nil)

	uc := NewProductUsecase(pRepo, new(CategoryRepoMock))

	_, err := uc.GetPublicProduct(context.Background(), 1)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestProductUsecase_GetPublicProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("FindByID", mock.Anything, int64(42)).
		Return(model.Product{}, repo.ErrNotFound)

	uc := NewProductUsecase(pRepo, new(CategoryRepoMock))

	_, err := uc.GetPublicProduct(context.Background(), 42)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestProductUsecase_CreateProduct_StartsInactive(t *testing.T) {
	pRepo := new(ProductRepoMock)
	var created model.Product
	pRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.Product) }).
		Return(model.Product{ID: 1, Name: "new", Price: 500}, nil)

	uc := NewProductUsecase(pRepo, new(CategoryRepoMock))

	_, err := uc.CreateProduct(context.Background(), SaveProductInput{Name: " new ", Price: 500, Stock: 3})

	assert.NoError(t, err)
	//公開は明示操作。作成直後は非公開
	assert.False(t, created.IsActive)
	assert.Equal(t, "new", created.Name)
}

func TestProductUsecase_CreateProduct_NegativePrice(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock))

	_, err := uc.CreateProduct(context.Background(), SaveProductInput{Name: "x", Price: -1})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestProductUsecase_SetProductActive_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	pRepo.On("SetActive", mock.Anything, int64(9), true).Return(repo.ErrNotFound)

	uc := NewProductUsecase(pRepo, new(CategoryRepoMock))

	err := uc.SetProductActive(context.Background(), 9, true)

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}

func TestProductUsecase_CreateCategory_RequiresNameAndSlug(t *testing.T) {
	uc := NewProductUsecase(new(ProductRepoMock), new(CategoryRepoMock))

	_, err := uc.CreateCategory(context.Background(), SaveCategoryInput{Name: "x", Slug: "  "})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}
