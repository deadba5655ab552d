package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role is a closed set. Authorization decisions switch on the typed value
// instead of comparing raw strings from the token.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"column:full_name;not null" json:"full_name"`
	Email    string `gorm:"column:email;unique;not null" json:"email"`
	Password string `gorm:"column:password;not null" json:"-"`
	Role     Role   `gorm:"column:role;default:customer" json:"role"`
	Phone    string `gorm:"column:phone" json:"phone,omitempty"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"is_active"`

	// Seller profile, empty for other roles.
	StoreName        string `gorm:"column:store_name" json:"store_name,omitempty"`
	StoreDescription string `gorm:"column:store_description" json:"store_description,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the denormalized shape embedded in order responses.
type UserSummary struct {
	ID        uint   `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email,omitempty"`
	StoreName string `json:"store_name,omitempty"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		StoreName: u.StoreName,
	}
}
