package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pobyzaarif/goshortcute"

	"jewelryhub/domain"
	"jewelryhub/pkg/logger"
	"jewelryhub/pkg/metrics"
	"jewelryhub/pkg/utils"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	PlaceOrder(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByCustomer(ctx context.Context, customerID uint, p *domain.Pagination) ([]domain.Order, error)
	FindBySeller(ctx context.Context, sellerID uint, p *domain.Pagination) ([]domain.Order, error)
	FindAll(ctx context.Context, status domain.OrderStatus, p *domain.Pagination) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order, from domain.OrderStatus) error
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// CartRepository contract interface
type CartRepository interface {
	Get(ctx context.Context, customerID uint) (domain.Cart, error)
	Delete(ctx context.Context, customerID uint) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

// LineRequest is one (product, quantity) pair submitted by the client.
// Prices are never taken from the request.
type LineRequest struct {
	ProductID uint
	Quantity  int
}

const (
	SubjectOrderConfirmed   = "Your Jewelry Hub order %s"
	EmailBodyOrderConfirmed = `Hi %v, thanks for your order!</br></br>Order %v for a total of %.2f has been received and is pending confirmation.</br>Track it here: %v`

	trackingLinkTTL = 30 * 24 * time.Hour
)

type ordersService struct {
	orderRepo        OrdersRepository
	userRepo         UserRepository
	cartRepo         CartRepository
	notifRepo        NotificationRepository
	orderLinkKey     string
	appDeploymentUrl string
}

func NewOrdersService(
	orderRepo OrdersRepository,
	userRepo UserRepository,
	cartRepo CartRepository,
	notifRepo NotificationRepository,
	orderLinkKey string,
	appDeploymentUrl string,
) *ordersService {
	return &ordersService{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		cartRepo:         cartRepo,
		notifRepo:        notifRepo,
		orderLinkKey:     orderLinkKey,
		appDeploymentUrl: appDeploymentUrl,
	}
}

// PlaceOrder converts the requested lines plus shipping/payment info into a
// persisted order. Pricing is authoritative server-side: each line's price
// is read from the catalog inside the placement transaction.
func (s *ordersService) PlaceOrder(ctx context.Context, customerID uint, lines []LineRequest, address domain.ShippingAddress, method domain.PaymentMethod) (domain.Order, error) {
	start := time.Now()

	if err := validatePlacement(lines, address, method); err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order := domain.Order{
		OrderNumber:     utils.GenerateOrderNumber(),
		CustomerID:      customerID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		Status:          domain.OrderStatusPending,
	}

	err := s.orderRepo.PlaceOrder(ctx, &order)
	if errors.Is(err, domain.ErrConflict) {
		// Order number collided, one retry with a fresh code.
		order.OrderNumber = utils.GenerateOrderNumber()
		err = s.orderRepo.PlaceOrder(ctx, &order)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.OrdersRejectedStock.Inc()
		}
		logger.Error("Failed to place order", err)
		return domain.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderPlacementLatency.Observe(time.Since(start).Seconds())
	logger.Info("order placed", "order_number", order.OrderNumber, "customer_id", customerID)

	if err := s.cartRepo.Delete(ctx, customerID); err != nil {
		logger.Warn("Failed to clear cart after placement", err)
	}

	s.sendConfirmationEmail(ctx, &order)

	placed, err := s.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		// The order is committed; return it unexpanded rather than failing.
		logger.Warn("Failed to reload placed order", err)
		return order, nil
	}

	return placed, nil
}

// Checkout places an order from the customer's server-side cart snapshot.
func (s *ordersService) Checkout(ctx context.Context, customerID uint, address domain.ShippingAddress, method domain.PaymentMethod) (domain.Order, error) {
	cart, err := s.cartRepo.Get(ctx, customerID)
	if err != nil {
		logger.Error("Failed to load cart for checkout", err)
		return domain.Order{}, err
	}

	lines := make([]LineRequest, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, LineRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return s.PlaceOrder(ctx, customerID, lines, address, method)
}

// GetOrder enforces viewer authorization: customers see their own orders,
// sellers see orders containing at least one of their lines, admins see all.
func (s *ordersService) GetOrder(ctx context.Context, orderID, actorID uint, actorRole domain.Role) (domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	switch actorRole {
	case domain.RoleAdmin:
	case domain.RoleCustomer:
		if order.CustomerID != actorID {
			return domain.Order{}, domain.ErrForbidden
		}
	case domain.RoleSeller:
		if !order.HasSellerItem(actorID) {
			return domain.Order{}, domain.ErrForbidden
		}
	default:
		return domain.Order{}, domain.ErrForbidden
	}

	return order, nil
}

// TrackOrder resolves the encrypted tracking code from a confirmation email
// into a public status view of the order.
func (s *ordersService) TrackOrder(ctx context.Context, code string) (domain.Order, error) {
	decoded := goshortcute.StringtoBase64Decode(code)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.orderLinkKey))
	if err != nil {
		logger.Error("Failed to decrypt tracking code", err)
		return domain.Order{}, fmt.Errorf("invalid tracking code: %w", domain.ErrValidation)
	}

	parts := strings.Split(decrypted, "|")
	if len(parts) != 2 {
		return domain.Order{}, fmt.Errorf("invalid tracking code: %w", domain.ErrValidation)
	}

	orderID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid tracking code: %w", domain.ErrValidation)
	}

	expAt, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().After(time.Unix(expAt, 0)) {
		return domain.Order{}, fmt.Errorf("expired tracking code: %w", domain.ErrValidation)
	}

	return s.orderRepo.FindByID(ctx, uint(orderID))
}

func (s *ordersService) GetCustomerOrders(ctx context.Context, customerID uint, p *domain.Pagination) ([]domain.Order, error) {
	return s.orderRepo.FindByCustomer(ctx, customerID, p)
}

func (s *ordersService) GetSellerOrders(ctx context.Context, sellerID uint, p *domain.Pagination) ([]domain.Order, error) {
	return s.orderRepo.FindBySeller(ctx, sellerID, p)
}

func (s *ordersService) GetAllOrders(ctx context.Context, status domain.OrderStatus, p *domain.Pagination) ([]domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, domain.ErrValidation)
	}

	return s.orderRepo.FindAll(ctx, status, p)
}

// UpdateStatus advances the order through its lifecycle. Sellers may only
// touch orders carrying at least one of their lines; transitions outside
// the table are rejected; delivered stamps deliveredAt.
func (s *ordersService) UpdateStatus(ctx context.Context, orderID uint, target domain.OrderStatus, actorID uint, actorRole domain.Role) (domain.Order, error) {
	if !target.Valid() {
		return domain.Order{}, fmt.Errorf("unknown status %q: %w", target, domain.ErrValidation)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	switch actorRole {
	case domain.RoleAdmin:
	case domain.RoleSeller:
		if !order.HasSellerItem(actorID) {
			return domain.Order{}, domain.ErrForbidden
		}
	default:
		return domain.Order{}, domain.ErrForbidden
	}

	if !order.Status.CanTransitionTo(target) {
		return domain.Order{}, fmt.Errorf("cannot move order from %s to %s: %w", order.Status, target, domain.ErrInvalidTransition)
	}

	from := order.Status
	order.Status = target
	if target == domain.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := s.orderRepo.UpdateStatus(ctx, &order, from); err != nil {
		logger.Error("Failed to update order status", err)
		return domain.Order{}, err
	}

	logger.Info("order status updated", "order_id", order.ID, "status", string(target))

	return order, nil
}

func (s *ordersService) sendConfirmationEmail(ctx context.Context, order *domain.Order) {
	if s.notifRepo == nil || s.orderLinkKey == "" {
		return
	}

	customer, err := s.userRepo.FindByID(ctx, order.CustomerID)
	if err != nil {
		logger.Warn("Failed to load customer for confirmation email", err)
		return
	}

	link, err := trackingLink(s.appDeploymentUrl, s.orderLinkKey, order.ID)
	if err != nil {
		logger.Warn("Failed to build tracking link", err)
		return
	}

	subject := fmt.Sprintf(SubjectOrderConfirmed, order.OrderNumber)
	body := fmt.Sprintf(EmailBodyOrderConfirmed, customer.FullName, order.OrderNumber, order.Total, link)

	if err := s.notifRepo.SendEmail(customer.FullName, customer.Email, subject, body); err != nil {
		logger.Warn("Failed to send confirmation email", err)
	}
}

func trackingLink(baseURL, key string, orderID uint) (string, error) {
	payload := fmt.Sprintf("%d|%d", orderID, time.Now().Add(trackingLinkTTL).Unix())

	encrypted, err := goshortcute.AESCBCEncrypt([]byte(payload), []byte(key))
	if err != nil {
		return "", err
	}

	return baseURL + "/api/v1/orders/track/" + goshortcute.StringtoBase64Encode(encrypted), nil
}

func validatePlacement(lines []LineRequest, address domain.ShippingAddress, method domain.PaymentMethod) error {
	if len(lines) == 0 {
		return fmt.Errorf("order must contain at least one item: %w", domain.ErrValidation)
	}

	for _, line := range lines {
		if line.ProductID == 0 {
			return fmt.Errorf("item is missing a product: %w", domain.ErrValidation)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("item quantity must be positive: %w", domain.ErrValidation)
		}
	}

	missing := func(field, value string) error {
		if value == "" {
			return fmt.Errorf("shipping address %s is required: %w", field, domain.ErrValidation)
		}
		return nil
	}
	for _, check := range []error{
		missing("name", address.Name),
		missing("street", address.Street),
		missing("city", address.City),
		missing("state", address.State),
		missing("zip code", address.ZipCode),
		missing("country", address.Country),
		missing("phone", address.Phone),
	} {
		if check != nil {
			return check
		}
	}

	if !method.Valid() {
		return fmt.Errorf("unsupported payment method %q: %w", method, domain.ErrValidation)
	}

	return nil
}
