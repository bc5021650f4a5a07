package models

import (
	"time"
)

type CheckoutSessionStatus string

const (
	CheckoutPending   CheckoutSessionStatus = "pending"
	CheckoutCompleted CheckoutSessionStatus = "completed"
)

// CheckoutSession is one row per checkout attempt, kept as an audit
// trail. Rows transition pending -> completed and are never deleted.
type CheckoutSession struct {
	ID          string                `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SessionId   string                `json:"sessionId" gorm:"uniqueIndex;not null"`
	UserID      string                `json:"userId" gorm:"type:uuid;not null;index"`
	PriceId     string                `json:"priceId"`
	Status      CheckoutSessionStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CompletedAt *time.Time            `json:"completedAt"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
