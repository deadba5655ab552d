package domain

import (
	"math"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions is the legal status graph: the happy path advances one
// step at a time, and cancellation is reachable from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  nil,
	OrderStatusCancelled:  nil,
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodPaypal       PaymentMethod = "paypal"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// Pricing constants: flat shipping fee and flat tax rate, deliberately not
// destination or weight based.
const (
	ShippingFee = 10.0
	TaxRate     = 0.08
)

type ShippingAddress struct {
	Name    string `gorm:"column:name;type:text" json:"name" validate:"required"`
	Street  string `gorm:"column:street;type:text" json:"street" validate:"required"`
	City    string `gorm:"column:city;type:text" json:"city" validate:"required"`
	State   string `gorm:"column:state;type:text" json:"state" validate:"required"`
	ZipCode string `gorm:"column:zip_code;type:text" json:"zip_code" validate:"required"`
	Country string `gorm:"column:country;type:text" json:"country" validate:"required"`
	Phone   string `gorm:"column:phone;type:text" json:"phone" validate:"required"`
}

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"column:order_number;uniqueIndex;not null" json:"order_number"`
	CustomerID  uint   `gorm:"column:customer_id;index" json:"customer_id"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod   PaymentMethod   `gorm:"column:payment_method" json:"payment_method"`

	Subtotal    float64 `gorm:"column:subtotal;type:numeric" json:"subtotal"`
	ShippingFee float64 `gorm:"column:shipping_fee;type:numeric" json:"shipping_fee"`
	Tax         float64 `gorm:"column:tax;type:numeric" json:"tax"`
	Total       float64 `gorm:"column:total;type:numeric" json:"total"`

	Status      OrderStatus `gorm:"column:status;default:pending" json:"status"`
	DeliveredAt *time.Time  `gorm:"column:delivered_at" json:"delivered_at,omitempty"`

	Customer *User `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem carries the price and seller copied from the product at
// placement time; it is never re-read from the live product afterwards.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"column:order_id;index" json:"-"`
	ProductID uint    `gorm:"column:product_id;index" json:"product_id"`
	SellerID  uint    `gorm:"column:seller_id;index" json:"seller_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric" json:"price"`
	Total     float64 `gorm:"column:total;type:numeric" json:"total"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Seller  *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// ComputeTotals derives subtotal, shipping fee, tax and total from the
// items. Tax and total are rounded to cents.
func (o *Order) ComputeTotals() {
	subtotal := 0.0
	for _, item := range o.Items {
		subtotal += item.Total
	}
	o.Subtotal = RoundMoney(subtotal)
	o.ShippingFee = ShippingFee
	o.Tax = RoundMoney(o.Subtotal * TaxRate)
	o.Total = RoundMoney(o.Subtotal + o.ShippingFee + o.Tax)
}

// HasSellerItem reports whether at least one line belongs to the seller.
func (o *Order) HasSellerItem(sellerID uint) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pagination is filled by repositories: Total and Pages come back from the
// count query, Page and Limit echo the request.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return &Pagination{Page: page, Limit: limit}
}

func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	p.Pages = int(math.Ceil(float64(total) / float64(p.Limit)))
}
