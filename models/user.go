package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	AdminRole Role = "ADMIN"
	UserRole  Role = "USER"
)

type User struct {
	ID                    string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email                 string             `json:"email" binding:"required,email" gorm:"uniqueIndex;not null"`
	Password              string             `json:"password,omitempty" binding:"required,min=6"`
	UserName              string             `json:"username"`
	Role                  Role               `json:"role" gorm:"type:varchar(10);default:'USER'"`
	Tier                  SubscriptionTier   `json:"tier" gorm:"type:varchar(20);default:'free'"`
	SubscriptionStatus    SubscriptionStatus `json:"subscriptionStatus" gorm:"type:varchar(20);default:'none'"`
	SubscriptionPeriodEnd *time.Time         `json:"subscriptionPeriodEnd"`
	StripeCustomerId      string             `json:"stripeCustomerId"`
	Enable                bool               `json:"enable"`
	EmailVerifiedAt       sql.NullTime       `json:"emailVerifiedAt"`
	CreatedAt             time.Time          `json:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt"`
}

// UserCreate carries the credentials of a signup or login request.
type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserName string `json:"username"`
}

// UserUpdate carries the profile fields a user may change themselves.
// Tier and subscription status are owned by the webhook reconciler and
// are never client-writable.
type UserUpdate struct {
	UserName string `json:"username"`
}
