package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"jewelryhub/domain"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// PlaceOrder validates and persists the order in a single transaction.
// Each line's stock decrement is conditional on stock >= quantity, so two
// concurrent placements cannot both take the last unit, and a failure on
// any line rolls back every earlier decrement.
func (r *OrdersRepository) PlaceOrder(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range order.Items {
			item := &order.Items[i]

			var product domain.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrNotFound)
				}
				return fmt.Errorf("failed to find product: %w", err)
			}

			if !product.IsActive {
				return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrNotFound)
			}

			result := tx.Model(&domain.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumns(map[string]interface{}{
					"stock": gorm.Expr("stock - ?", item.Quantity),
					"sales": gorm.Expr("sales + ?", item.Quantity),
				})
			if result.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for %s: %w", product.Name, domain.ErrInsufficientStock)
			}

			// Price and seller are frozen into the line at this instant.
			item.SellerID = product.SellerID
			item.Price = product.Price
			item.Total = domain.RoundMoney(product.Price * float64(item.Quantity))
		}

		order.ComputeTotals()

		if err := tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("order number %s: %w", order.OrderNumber, domain.ErrConflict)
			}
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Items.Product.Images").
		Preload("Items.Seller").
		Preload("Customer").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrdersRepository) FindByCustomer(ctx context.Context, customerID uint, p *domain.Pagination) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return r.findPage(ctx, p, r.DB.WithContext(ctx).Model(&domain.Order{}).Where("customer_id = ?", customerID))
}

func (r *OrdersRepository) FindBySeller(ctx context.Context, sellerID uint, p *domain.Pagination) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	sub := r.DB.WithContext(ctx).Model(&domain.OrderItem{}).Select("order_id").Where("seller_id = ?", sellerID)
	return r.findPage(ctx, p, r.DB.WithContext(ctx).Model(&domain.Order{}).Where("id IN (?)", sub))
}

func (r *OrdersRepository) FindAll(ctx context.Context, status domain.OrderStatus, p *domain.Pagination) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query := r.DB.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	return r.findPage(ctx, p, query)
}

func (r *OrdersRepository) findPage(ctx context.Context, p *domain.Pagination, query *gorm.DB) ([]domain.Order, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	p.SetTotal(total)

	var orders []domain.Order
	err := query.
		Preload("Items.Product.Images").
		Preload("Items.Seller").
		Preload("Customer").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus persists a status change, including the deliveredAt stamp
// the service may have set. The write is conditional on the status the
// caller validated against, so two concurrent transitions cannot both land.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, order *domain.Order, from domain.OrderStatus) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", order.ID, from).
		Updates(map[string]interface{}{
			"status":       order.Status,
			"delivered_at": order.DeliveredAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order %d was updated concurrently: %w", order.ID, domain.ErrConflict)
	}

	return nil
}
