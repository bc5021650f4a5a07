package models

import (
	"time"
)

// SubscriptionStatus mirrors the most recent successfully processed
// payment-provider event for a subscription.
type SubscriptionStatus string

const (
	SubscriptionNone     SubscriptionStatus = "none"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// Subscription is one row per Stripe subscription object, keyed by the
// Stripe subscription id. Canceled rows are kept, never deleted; a user
// resuming billing later gets a new Stripe id and therefore a new row.
type Subscription struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID               string             `json:"userId" gorm:"type:uuid;not null;index"`
	StripeSubscriptionId string             `json:"stripeSubscriptionId" gorm:"uniqueIndex;not null"`
	StripeCustomerId     string             `json:"stripeCustomerId"`
	Status               SubscriptionStatus `json:"status" gorm:"type:varchar(20);default:'none'"`
	PriceId              string             `json:"priceId"`
	CurrentPeriodStart   time.Time          `json:"currentPeriodStart"`
	CurrentPeriodEnd     time.Time          `json:"currentPeriodEnd"`
	CancelAtPeriodEnd    bool               `json:"cancelAtPeriodEnd"`
	TrialStart           *time.Time         `json:"trialStart"`
	TrialEnd             *time.Time         `json:"trialEnd"`
	CanceledAt           *time.Time         `json:"canceledAt"`
	LastEventAt          time.Time          `json:"lastEventAt"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}
