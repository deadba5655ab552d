package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jewelryhub/domain"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	err := r.DB.WithContext(ctx).
		Preload("Images").
		Preload("Category").
		Preload("Seller").
		Preload("Reviews.User").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// FindAll applies the catalog filters and fills the pagination counters.
// Reviews are deliberately not loaded on listings.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter, p *domain.Pagination) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Product{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	p.SetTotal(total)

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "popular":
		query = query.Order("sales DESC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	var products []domain.Product
	err := query.
		Preload("Images").
		Preload("Category").
		Preload("Seller").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":            product.Name,
		"description":     product.Description,
		"price":           product.Price,
		"stock":           product.Stock,
		"category_id":     product.CategoryID,
		"is_active":       product.IsActive,
		"is_featured":     product.IsFeatured,
		"spec_material":   product.Specifications.Material,
		"spec_gemstone":   product.Specifications.Gemstone,
		"spec_weight":     product.Specifications.Weight,
		"spec_dimensions": product.Specifications.Dimensions,
		"spec_care":       product.Specifications.Care,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, domain.ErrNotFound)
	}

	if product.Images != nil {
		if err := r.DB.WithContext(ctx).Where("product_id = ?", product.ID).Delete(&domain.ProductImage{}).Error; err != nil {
			return fmt.Errorf("failed to replace product images: %w", err)
		}
		for i := range product.Images {
			product.Images[i].ID = 0
			product.Images[i].ProductID = product.ID
		}
		if len(product.Images) > 0 {
			if err := r.DB.WithContext(ctx).Create(&product.Images).Error; err != nil {
				return fmt.Errorf("failed to replace product images: %w", err)
			}
		}
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *ProductRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *ProductRepository) HasReview(ctx context.Context, productID, userID uint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).Model(&domain.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}

	return count > 0, nil
}

// AddReview inserts the review and refreshes the product's rating average
// and count in one transaction.
func (r *ProductRepository) AddReview(ctx context.Context, review *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var agg struct {
			Average float64
			Count   int64
		}
		err := tx.Model(&domain.Review{}).
			Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
			Where("product_id = ?", review.ProductID).
			Scan(&agg).Error
		if err != nil {
			return fmt.Errorf("failed to aggregate ratings: %w", err)
		}

		result := tx.Model(&domain.Product{}).Where("id = ?", review.ProductID).Updates(map[string]interface{}{
			"rating_average": agg.Average,
			"rating_count":   agg.Count,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update ratings: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("product %d: %w", review.ProductID, domain.ErrNotFound)
		}

		return nil
	})
}
