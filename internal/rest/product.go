package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter domain.ProductFilter, p *domain.Pagination) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uint) (domain.Product, error)
	CreateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, sellerID uint, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, sellerID uint, id uint) error
	GetSellerProducts(ctx context.Context, sellerID uint, p *domain.Pagination) ([]domain.Product, error)
	AddReview(ctx context.Context, productID, userID uint, rating int, comment string) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type ProductRequest struct {
	Name           string                `json:"name" validate:"required,min=2"`
	Description    string                `json:"description" validate:"required,min=10"`
	Price          float64               `json:"price" validate:"gte=0"`
	Stock          int                   `json:"stock" validate:"gte=0"`
	CategoryID     uint                  `json:"category_id" validate:"required"`
	Images         []domain.ProductImage `json:"images"`
	Specifications domain.Specifications `json:"specifications"`
	IsActive       *bool                 `json:"is_active"`
	IsFeatured     bool                  `json:"is_featured"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := paginationFromQuery(c)

	categoryID, _ := strconv.ParseUint(c.QueryParam("category"), 10, 64)
	minPrice, _ := strconv.ParseFloat(c.QueryParam("minPrice"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("maxPrice"), 64)

	filter := domain.ProductFilter{
		Search:     c.QueryParam("search"),
		CategoryID: uint(categoryID),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		SortBy:     c.QueryParam("sortBy"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.ListProducts(ctx, filter, pagination)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"products":   products,
		"pagination": pagination,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProduct(ctx, uint(productID))
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID := c.Get("user_id").(uint)

	var req ProductRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := productFromRequest(&req)

	newProduct, err := h.productService.CreateProduct(ctx, sellerID, product)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	sellerID := c.Get("user_id").(uint)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate product request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product := productFromRequest(&req)
	product.ID = uint(productID)

	updated, err := h.productService.UpdateProduct(ctx, sellerID, product)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"product": updated,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	sellerID := c.Get("user_id").(uint)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, sellerID, uint(productID)); err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) GetSellerProducts(c echo.Context) error {
	sellerID := c.Get("user_id").(uint)
	pagination := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetSellerProducts(ctx, sellerID, pagination)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"products":   products,
		"pagination": pagination,
	})
}

func (h *ProductHandler) AddReview(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid product id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate review request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.AddReview(ctx, uint(productID), userID, req.Rating, req.Comment); err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Review added successfully",
	})
}

func productFromRequest(req *ProductRequest) *domain.Product {
	product := &domain.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Stock:          req.Stock,
		CategoryID:     req.CategoryID,
		Images:         req.Images,
		Specifications: req.Specifications,
		IsFeatured:     req.IsFeatured,
		IsActive:       true,
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	return product
}
