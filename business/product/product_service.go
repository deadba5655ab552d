package product

import (
	"context"
	"errors"
	"fmt"

	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter, p *domain.Pagination) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	HasReview(ctx context.Context, productID, userID uint) (bool, error)
	AddReview(ctx context.Context, review *domain.Review) error
}

// CategoryRepository contract interface
type CategoryRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Category, error)
}

type productService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
}

func NewProductService(productRepo ProductRepository, categoryRepo CategoryRepository) *productService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListProducts serves the public catalog: only active products, filters
// and sort from the query string.
func (s *productService) ListProducts(ctx context.Context, filter domain.ProductFilter, p *domain.Pagination) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	filter.OnlyActive = true

	products, err := s.productRepo.FindAll(ctx, filter, p)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	return products, nil
}

// GetProduct returns one product with category, seller and reviews
// expanded, counting the view.
func (s *productService) GetProduct(ctx context.Context, id uint) (domain.Product, error) {
	if id == 0 {
		return domain.Product{}, fmt.Errorf("invalid product id: %w", domain.ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("Failed to increment product views", err)
	} else {
		product.Views++
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.Name == "" {
		return nil, fmt.Errorf("product name is required: %w", domain.ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}
	if product.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", domain.ErrValidation)
	}

	if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("category %d does not exist: %w", product.CategoryID, domain.ErrValidation)
		}
		return nil, err
	}

	// IsActive comes from the caller; the handler defaults it to true when
	// the request omits the flag, so sellers can create drafts.
	product.SellerID = sellerID

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", err)
		return nil, err
	}

	logger.Info("product created", "product_id", product.ID, "seller_id", sellerID)

	return product, nil
}

// UpdateProduct allows only the owning seller to edit. Stock edits here set
// the absolute value; order placement is the only path that decrements.
func (s *productService) UpdateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		return nil, fmt.Errorf("product ID is required: %w", domain.ErrValidation)
	}
	if product.Name == "" {
		return nil, fmt.Errorf("product name is required: %w", domain.ErrValidation)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", domain.ErrValidation)
	}
	if product.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative: %w", domain.ErrValidation)
	}

	existing, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	if existing.SellerID != sellerID {
		return nil, domain.ErrForbidden
	}

	if product.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("category %d does not exist: %w", product.CategoryID, domain.ErrValidation)
			}
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", err)
		return nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, sellerID uint, id uint) error {
	if id == 0 {
		return fmt.Errorf("invalid product id: %w", domain.ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.SellerID != sellerID {
		return domain.ErrForbidden
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return err
	}

	logger.Info("product deleted", "product_id", id)

	return nil
}

func (s *productService) GetSellerProducts(ctx context.Context, sellerID uint, p *domain.Pagination) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.productRepo.FindAll(ctx, domain.ProductFilter{SellerID: sellerID}, p)
}

// AddReview records a customer review, one per customer per product, and
// refreshes the product's rating aggregate.
func (s *productService) AddReview(ctx context.Context, productID, userID uint, rating int, comment string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrValidation)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}

	exists, err := s.productRepo.HasReview(ctx, productID, userID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("you have already reviewed this product: %w", domain.ErrConflict)
	}

	review := &domain.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}

	if err := s.productRepo.AddReview(ctx, review); err != nil {
		logger.Error("failed to add review", err)
		return err
	}

	logger.Info("review added", "product_id", productID, "user_id", userID)

	return nil
}
