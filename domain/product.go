package domain

import (
	"time"
)

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:name;type:text;not null" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description"`
	Price       float64 `gorm:"column:price;type:numeric" json:"price"`
	Stock       int     `gorm:"column:stock;default:0" json:"stock"`
	Sales       int     `gorm:"column:sales;default:0" json:"sales"`
	Views       int     `gorm:"column:views;default:0" json:"views"`
	CategoryID  uint    `gorm:"column:category_id" json:"category_id"`
	SellerID    uint    `gorm:"column:seller_id" json:"seller_id"`
	IsActive    bool    `gorm:"column:is_active;default:true" json:"is_active"`
	IsFeatured  bool    `gorm:"column:is_featured;default:false" json:"is_featured"`

	Specifications Specifications `gorm:"embedded;embeddedPrefix:spec_" json:"specifications"`

	RatingAverage float64 `gorm:"column:rating_average;default:0" json:"rating_average"`
	RatingCount   int     `gorm:"column:rating_count;default:0" json:"rating_count"`

	Images  []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	Reviews []Review       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// Specifications for jewelry items, all optional free text.
type Specifications struct {
	Material   string `gorm:"type:text" json:"material,omitempty"`
	Gemstone   string `gorm:"type:text" json:"gemstone,omitempty"`
	Weight     string `gorm:"type:text" json:"weight,omitempty"`
	Dimensions string `gorm:"type:text" json:"dimensions,omitempty"`
	Care       string `gorm:"type:text" json:"care,omitempty"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProductID uint   `gorm:"column:product_id;index" json:"-"`
	URL       string `gorm:"column:url;type:text" json:"url"`
	Alt       string `gorm:"column:alt;type:text" json:"alt,omitempty"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"column:product_id;index" json:"product_id"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	Rating    int       `gorm:"column:rating;not null" json:"rating"`
	Comment   string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}

// ProductSummary is the denormalized shape embedded in order responses.
type ProductSummary struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Images []ProductImage `json:"images,omitempty"`
}

func (p Product) Summary() ProductSummary {
	return ProductSummary{
		ID:     p.ID,
		Name:   p.Name,
		Images: p.Images,
	}
}

// ProductFilter captures the catalog listing query parameters.
type ProductFilter struct {
	Search     string
	CategoryID uint
	SellerID   uint
	MinPrice   float64
	MaxPrice   float64
	SortBy     string // price_asc, price_desc, newest, popular
	OnlyActive bool
}
