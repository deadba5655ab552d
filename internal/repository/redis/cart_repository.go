package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jewelryhub/domain"
)

// Carts live for 30 days past the last write.
const cartTTL = 30 * 24 * time.Hour

type CartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{
		client: client,
	}
}

func cartKey(customerID uint) string {
	return fmt.Sprintf("cart:user:%d", customerID)
}

// Get returns the customer's cart, or an empty cart if none is stored.
func (r *CartRepository) Get(ctx context.Context, customerID uint) (domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(customerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}, nil
		}
		return domain.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart domain.Cart) error {
	cart.UpdatedAt = time.Now()

	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.CustomerID), jsonData, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, customerID uint) error {
	if err := r.client.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
