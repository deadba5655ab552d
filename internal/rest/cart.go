package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
)

type CartService interface {
	GetCart(ctx context.Context, customerID uint) (domain.Cart, error)
	ReplaceCart(ctx context.Context, customerID uint, items []domain.CartItem) (domain.Cart, error)
	AddItem(ctx context.Context, customerID uint, item domain.CartItem) (domain.Cart, error)
	RemoveItem(ctx context.Context, customerID, productID uint) (domain.Cart, error)
	ClearCart(ctx context.Context, customerID uint) error
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type CartItemInput struct {
	Product  uint `json:"product" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

type ReplaceCartInput struct {
	Items []CartItemInput `json:"items" validate:"dive"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.GetCart(ctx, customerID)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) ReplaceCart(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	var req ReplaceCartInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind cart request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	items := make([]domain.CartItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, domain.CartItem{ProductID: in.Product, Quantity: in.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.ReplaceCart(ctx, customerID, items)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	var req CartItemInput
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind cart item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate cart item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.AddItem(ctx, customerID, domain.CartItem{
		ProductID: req.Product,
		Quantity:  req.Quantity,
	})
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cart, err := h.cartService.RemoveItem(ctx, customerID, uint(productID))
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cart))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.cartService.ClearCart(ctx, customerID); err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Cart cleared"))
}
