package cart

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewelryhub/domain"
)

type fakeCartRepo struct {
	carts map[uint]domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]domain.Cart)}
}

func (r *fakeCartRepo) Get(ctx context.Context, customerID uint) (domain.Cart, error) {
	cart, ok := r.carts[customerID]
	if !ok {
		return domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}, nil
	}
	return cart, nil
}

func (r *fakeCartRepo) Save(ctx context.Context, cart domain.Cart) error {
	r.carts[cart.CustomerID] = cart
	return nil
}

func (r *fakeCartRepo) Delete(ctx context.Context, customerID uint) error {
	delete(r.carts, customerID)
	return nil
}

type fakeProductRepo struct {
	products map[uint]domain.Product
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func testCartService() (*cartService, *fakeCartRepo) {
	cartRepo := newFakeCartRepo()
	productRepo := &fakeProductRepo{products: map[uint]domain.Product{
		1: {ID: 1, Name: "Gold Ring", IsActive: true},
		2: {ID: 2, Name: "Silver Chain", IsActive: true},
		3: {ID: 3, Name: "Retired Pendant", IsActive: false},
	}}
	return NewCartService(cartRepo, productRepo), cartRepo
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, _ := testCartService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, 42, domain.CartItem{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = svc.AddItem(ctx, 42, domain.CartItem{ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart, err = svc.AddItem(ctx, 42, domain.CartItem{ProductID: 2, Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := testCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 42, domain.CartItem{ProductID: 0, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddItem(ctx, 42, domain.CartItem{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddItem(ctx, 42, domain.CartItem{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddItem(ctx, 42, domain.CartItem{ProductID: 3, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceCart(t *testing.T) {
	svc, repo := testCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 42, domain.CartItem{ProductID: 1, Quantity: 5})
	require.NoError(t, err)

	cart, err := svc.ReplaceCart(ctx, 42, []domain.CartItem{{ProductID: 2, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ProductID)

	stored := repo.carts[42]
	assert.Equal(t, cart.Items, stored.Items)
}

func TestReplaceCartEmpty(t *testing.T) {
	svc, _ := testCartService()

	cart, err := svc.ReplaceCart(context.Background(), 42, nil)
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem(t *testing.T) {
	svc, _ := testCartService()
	ctx := context.Background()

	_, err := svc.ReplaceCart(ctx, 42, []domain.CartItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, 42, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ProductID)

	// Removing an absent product is a no-op.
	cart, err = svc.RemoveItem(ctx, 42, 99)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestClearCart(t *testing.T) {
	svc, repo := testCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, 42, domain.CartItem{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, 42))
	assert.Empty(t, repo.carts)

	cart, err := svc.GetCart(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
