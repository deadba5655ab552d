package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelryhub/domain"
)

type fakeProductRepo struct {
	products map[uint]*domain.Product
	reviews  []domain.Review
	nextID   uint
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uint]*domain.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
	}
	return repo
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return *product, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context, filter domain.ProductFilter, p *domain.Pagination) ([]domain.Product, error) {
	var matched []domain.Product
	for _, product := range r.products {
		if filter.OnlyActive && !product.IsActive {
			continue
		}
		if filter.SellerID != 0 && product.SellerID != filter.SellerID {
			continue
		}
		matched = append(matched, *product)
	}
	p.SetTotal(int64(len(matched)))
	return matched, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %d: %w", product.ID, domain.ErrNotFound)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) IncrementViews(ctx context.Context, id uint) error {
	if product, ok := r.products[id]; ok {
		product.Views++
	}
	return nil
}

func (r *fakeProductRepo) HasReview(ctx context.Context, productID, userID uint) (bool, error) {
	for _, review := range r.reviews {
		if review.ProductID == productID && review.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) AddReview(ctx context.Context, review *domain.Review) error {
	r.reviews = append(r.reviews, *review)

	product := r.products[review.ProductID]
	sum := 0
	count := 0
	for _, rv := range r.reviews {
		if rv.ProductID == review.ProductID {
			sum += rv.Rating
			count++
		}
	}
	product.RatingAverage = float64(sum) / float64(count)
	product.RatingCount = count
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint]domain.Category
}

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return domain.Category{}, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	return category, nil
}

func testProductService(products ...*domain.Product) (*productService, *fakeProductRepo) {
	repo := newFakeProductRepo(products...)
	categoryRepo := &fakeCategoryRepo{categories: map[uint]domain.Category{
		1: {ID: 1, Name: "Rings"},
		2: {ID: 2, Name: "Necklaces"},
	}}
	return NewProductService(repo, categoryRepo), repo
}

func TestCreateProduct(t *testing.T) {
	svc, repo := testProductService()

	created, err := svc.CreateProduct(context.Background(), 7, &domain.Product{
		Name:        "Gold Ring",
		Description: "18k gold band",
		Price:       120,
		Stock:       5,
		CategoryID:  1,
		IsActive:    true,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, uint(7), created.SellerID)
	assert.True(t, created.IsActive)
	assert.Contains(t, repo.products, created.ID)
}

func TestCreateProductKeepsInactiveFlag(t *testing.T) {
	svc, repo := testProductService()

	created, err := svc.CreateProduct(context.Background(), 7, &domain.Product{
		Name:        "Draft Ring",
		Description: "not listed yet",
		Price:       80,
		Stock:       1,
		CategoryID:  1,
		IsActive:    false,
	})

	require.NoError(t, err)
	assert.False(t, created.IsActive)
	assert.False(t, repo.products[created.ID].IsActive)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := testProductService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, 7, &domain.Product{Price: 10, CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateProduct(ctx, 7, &domain.Product{Name: "Ring", Price: -1, CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateProduct(ctx, 7, &domain.Product{Name: "Ring", Price: 10, Stock: -1, CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateProduct(ctx, 7, &domain.Product{Name: "Ring", Price: 10, CategoryID: 99})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateProductOwnership(t *testing.T) {
	svc, _ := testProductService(&domain.Product{ID: 1, Name: "Gold Ring", Price: 120, SellerID: 7, CategoryID: 1, IsActive: true})
	ctx := context.Background()

	updated, err := svc.UpdateProduct(ctx, 7, &domain.Product{ID: 1, Name: "Gold Ring", Price: 150, CategoryID: 1})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)

	_, err = svc.UpdateProduct(ctx, 8, &domain.Product{ID: 1, Name: "Gold Ring", Price: 99, CategoryID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteProductOwnership(t *testing.T) {
	svc, repo := testProductService(&domain.Product{ID: 1, Name: "Gold Ring", SellerID: 7, CategoryID: 1, IsActive: true})
	ctx := context.Background()

	err := svc.DeleteProduct(ctx, 8, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, repo.products, uint(1))

	require.NoError(t, svc.DeleteProduct(ctx, 7, 1))
	assert.NotContains(t, repo.products, uint(1))
}

func TestGetProductCountsView(t *testing.T) {
	svc, repo := testProductService(&domain.Product{ID: 1, Name: "Gold Ring", SellerID: 7, CategoryID: 1, IsActive: true})

	product, err := svc.GetProduct(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, product.Views)
	assert.Equal(t, 1, repo.products[1].Views)
}

func TestListProductsHidesInactive(t *testing.T) {
	svc, _ := testProductService(
		&domain.Product{ID: 1, Name: "Gold Ring", SellerID: 7, CategoryID: 1, IsActive: true},
		&domain.Product{ID: 2, Name: "Retired Pendant", SellerID: 7, CategoryID: 2, IsActive: false},
	)

	products, err := svc.ListProducts(context.Background(), domain.ProductFilter{}, domain.NewPagination(1, 10))

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Gold Ring", products[0].Name)
}

func TestAddReview(t *testing.T) {
	svc, repo := testProductService(&domain.Product{ID: 1, Name: "Gold Ring", SellerID: 7, CategoryID: 1, IsActive: true})
	ctx := context.Background()

	require.NoError(t, svc.AddReview(ctx, 1, 42, 5, "beautiful"))
	require.NoError(t, svc.AddReview(ctx, 1, 43, 4, ""))

	assert.Equal(t, 4.5, repo.products[1].RatingAverage)
	assert.Equal(t, 2, repo.products[1].RatingCount)
}

func TestAddReviewRejectsDuplicateAndBadRating(t *testing.T) {
	svc, _ := testProductService(&domain.Product{ID: 1, Name: "Gold Ring", SellerID: 7, CategoryID: 1, IsActive: true})
	ctx := context.Background()

	require.NoError(t, svc.AddReview(ctx, 1, 42, 5, ""))

	err := svc.AddReview(ctx, 1, 42, 3, "again")
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, svc.AddReview(ctx, 1, 43, 0, ""), domain.ErrValidation)
	assert.ErrorIs(t, svc.AddReview(ctx, 1, 43, 6, ""), domain.ErrValidation)
	assert.ErrorIs(t, svc.AddReview(ctx, 99, 43, 4, ""), domain.ErrNotFound)
}
