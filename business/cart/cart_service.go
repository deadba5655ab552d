package cart

import (
	"context"
	"fmt"

	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
)

// CartRepository contract interface
type CartRepository interface {
	Get(ctx context.Context, customerID uint) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, customerID uint) error
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type cartService struct {
	cartRepo    CartRepository
	productRepo ProductRepository
}

func NewCartService(cartRepo CartRepository, productRepo ProductRepository) *cartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, customerID uint) (domain.Cart, error) {
	return s.cartRepo.Get(ctx, customerID)
}

// ReplaceCart swaps the whole cart for the submitted lines. Quantities are
// sanity-checked but stock is not reserved; that happens at placement.
func (s *cartService) ReplaceCart(ctx context.Context, customerID uint, items []domain.CartItem) (domain.Cart, error) {
	for _, item := range items {
		if err := s.checkItem(ctx, item); err != nil {
			return domain.Cart{}, err
		}
	}

	cart := domain.Cart{CustomerID: customerID, Items: items}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		logger.Error("Failed to save cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

// AddItem merges one line into the cart, summing quantities for a product
// already present.
func (s *cartService) AddItem(ctx context.Context, customerID uint, item domain.CartItem) (domain.Cart, error) {
	if err := s.checkItem(ctx, item); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Merge(item)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		logger.Error("Failed to save cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, productID uint) (domain.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Remove(productID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		logger.Error("Failed to save cart", err)
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, customerID uint) error {
	return s.cartRepo.Delete(ctx, customerID)
}

func (s *cartService) checkItem(ctx context.Context, item domain.CartItem) error {
	if item.ProductID == 0 {
		return fmt.Errorf("cart item is missing a product: %w", domain.ErrValidation)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("cart item quantity must be positive: %w", domain.ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrNotFound)
	}

	return nil
}
