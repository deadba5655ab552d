package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"jewelryhub/business/orders"
	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		PlaceOrder(ctx context.Context, customerID uint, lines []orders.LineRequest, address domain.ShippingAddress, method domain.PaymentMethod) (domain.Order, error)
		Checkout(ctx context.Context, customerID uint, address domain.ShippingAddress, method domain.PaymentMethod) (domain.Order, error)
		GetOrder(ctx context.Context, orderID, actorID uint, actorRole domain.Role) (domain.Order, error)
		TrackOrder(ctx context.Context, code string) (domain.Order, error)
		GetCustomerOrders(ctx context.Context, customerID uint, p *domain.Pagination) ([]domain.Order, error)
		GetSellerOrders(ctx context.Context, sellerID uint, p *domain.Pagination) ([]domain.Order, error)
		GetAllOrders(ctx context.Context, status domain.OrderStatus, p *domain.Pagination) ([]domain.Order, error)
		UpdateStatus(ctx context.Context, orderID uint, target domain.OrderStatus, actorID uint, actorRole domain.Role) (domain.Order, error)
	}

	OrderLineInput struct {
		Product  uint `json:"product" validate:"required"`
		Quantity int  `json:"quantity" validate:"required,gt=0"`
	}

	CreateOrderInput struct {
		Items           []OrderLineInput       `json:"items" validate:"required,min=1,dive"`
		ShippingAddress domain.ShippingAddress `json:"shippingAddress" validate:"required"`
		PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	}

	CheckoutInput struct {
		ShippingAddress domain.ShippingAddress `json:"shippingAddress" validate:"required"`
		PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	}

	UpdateStatusInput struct {
		Status string `json:"status" validate:"required"`
	}

	// orderItemView projects an order line the way the API exposes it:
	// the frozen price and quantity from the line itself, plus trimmed
	// product and seller summaries instead of the full records.
	orderItemView struct {
		ProductID uint                   `json:"product_id"`
		Product   *domain.ProductSummary `json:"product,omitempty"`
		SellerID  uint                   `json:"seller_id"`
		Seller    *domain.UserSummary    `json:"seller,omitempty"`
		Quantity  int                    `json:"quantity"`
		Price     float64                `json:"price"`
		Total     float64                `json:"total"`
	}

	orderView struct {
		ID              uint                   `json:"id"`
		OrderNumber     string                 `json:"order_number"`
		CustomerID      uint                   `json:"customer_id"`
		Customer        *domain.UserSummary    `json:"customer,omitempty"`
		Items           []orderItemView        `json:"items"`
		ShippingAddress domain.ShippingAddress `json:"shipping_address"`
		PaymentMethod   domain.PaymentMethod   `json:"payment_method"`
		Subtotal        float64                `json:"subtotal"`
		ShippingFee     float64                `json:"shipping_fee"`
		Tax             float64                `json:"tax"`
		Total           float64                `json:"total"`
		Status          domain.OrderStatus     `json:"status"`
		DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
		CreatedAt       time.Time              `json:"created_at"`
	}
)

func orderViewFrom(order domain.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view := orderItemView{
			ProductID: item.ProductID,
			SellerID:  item.SellerID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		}
		if item.Product != nil {
			summary := item.Product.Summary()
			view.Product = &summary
		}
		if item.Seller != nil {
			summary := item.Seller.Summary()
			view.Seller = &summary
		}
		items = append(items, view)
	}

	view := orderView{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		Items:           items,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Subtotal:        order.Subtotal,
		ShippingFee:     order.ShippingFee,
		Tax:             order.Tax,
		Total:           order.Total,
		Status:          order.Status,
		DeliveredAt:     order.DeliveredAt,
		CreatedAt:       order.CreatedAt,
	}
	if order.Customer != nil {
		summary := order.Customer.Summary()
		view.Customer = &summary
	}

	return view
}

func orderViewsFrom(orderList []domain.Order) []orderView {
	views := make([]orderView, 0, len(orderList))
	for _, order := range orderList {
		views = append(views, orderViewFrom(order))
	}
	return views
}

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	var request CreateOrderInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	lines := make([]orders.LineRequest, 0, len(request.Items))
	for _, item := range request.Items {
		lines = append(lines, orders.LineRequest{ProductID: item.Product, Quantity: item.Quantity})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.PlaceOrder(ctx, customerID, lines, request.ShippingAddress, domain.PaymentMethod(request.PaymentMethod))
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   orderViewFrom(order),
	})
}

// Checkout places an order from the server-side cart instead of a request
// body item list.
func (h *OrdersHandler) Checkout(c echo.Context) error {
	customerID := c.Get("user_id").(uint)

	var request CheckoutInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate checkout request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.Checkout(ctx, customerID, request.ShippingAddress, domain.PaymentMethod(request.PaymentMethod))
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"order":   orderViewFrom(order),
	})
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	actorID := c.Get("user_id").(uint)
	actorRole := c.Get("role").(domain.Role)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(orderID), actorID, actorRole)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   orderViewFrom(order),
	})
}

// TrackOrder is the public endpoint behind the emailed tracking link; it
// exposes only the order's public status fields.
func (h *OrdersHandler) TrackOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.TrackOrder(ctx, c.Param("code"))
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order": map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"delivered_at": order.DeliveredAt,
			"created_at":   order.CreatedAt,
		},
	})
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	customerID := c.Get("user_id").(uint)
	pagination := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orderList, err := h.ordersService.GetCustomerOrders(ctx, customerID, pagination)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return orderListResponse(c, orderList, pagination)
}

func (h *OrdersHandler) GetSellerOrders(c echo.Context) error {
	sellerID := c.Get("user_id").(uint)
	pagination := paginationFromQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orderList, err := h.ordersService.GetSellerOrders(ctx, sellerID, pagination)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return orderListResponse(c, orderList, pagination)
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	pagination := paginationFromQuery(c)
	status := domain.OrderStatus(c.QueryParam("status"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orderList, err := h.ordersService.GetAllOrders(ctx, status, pagination)
	if err != nil {
		httpStatus, msg := statusFor(err)
		return c.JSON(httpStatus, ResponseError{Message: msg})
	}

	return orderListResponse(c, orderList, pagination)
}

func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order id"})
	}

	var request UpdateStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate status request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	actorID := c.Get("user_id").(uint)
	actorRole := c.Get("role").(domain.Role)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateStatus(ctx, uint(orderID), domain.OrderStatus(request.Status), actorID, actorRole)
	if err != nil {
		status, msg := statusFor(err)
		return c.JSON(status, ResponseError{Message: msg})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   orderViewFrom(order),
	})
}

func paginationFromQuery(c echo.Context) *domain.Pagination {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return domain.NewPagination(page, limit)
}

func orderListResponse(c echo.Context, orderList []domain.Order, pagination *domain.Pagination) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"orders":     orderViewsFrom(orderList),
		"pagination": pagination,
	})
}
