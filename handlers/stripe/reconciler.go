package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"
	mailsmodels "github.com/mmanthe37/gear-ai-v1/utils/mails-models"

	stripe "github.com/stripe/stripe-go/v82"
	stripeSubscription "github.com/stripe/stripe-go/v82/subscription"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// metadataUserKey is written on checkout sessions and subscriptions by
// the checkout initiator and read back by the reconciler.
const metadataUserKey = "user_id"

type OutcomeStatus string

const (
	OutcomeProcessed OutcomeStatus = "processed"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Outcome classifies what the reconciler did with one event. Skipped
// events are acknowledged to Stripe (a permanently unprocessable event
// would otherwise be redelivered forever); Failed events answer 500 so
// Stripe redelivers, which is safe because the subscription upsert is
// idempotent.
type Outcome struct {
	Status OutcomeStatus
	Reason string
	Err    error
}

func processed() Outcome { return Outcome{Status: OutcomeProcessed} }

func skipped(reason string) Outcome {
	utils.LogInfo("Webhook event skipped: " + reason)
	return Outcome{Status: OutcomeSkipped, Reason: reason}
}

func failed(err error) Outcome {
	utils.LogError(err, "Webhook event processing failed")
	return Outcome{Status: OutcomeFailed, Err: err}
}

// RetrieveSubscription fetches a subscription object from Stripe.
// Package variable so tests can stub the provider call.
var RetrieveSubscription = func(id string) (*stripe.Subscription, error) {
	return stripeSubscription.Get(id, nil)
}

var notifyPaymentFailed = mailsmodels.PaymentFailed

// ProcessEvent applies one signature-verified Stripe event to the local
// users/subscriptions/checkout_sessions state.
func ProcessEvent(event stripe.Event) Outcome {
	eventTime := time.Unix(event.Created, 0)

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return skipped("malformed checkout session payload")
		}
		return handleCheckoutSessionCompleted(&session, eventTime)

	case "customer.subscription.created", "customer.subscription.updated":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return skipped("malformed subscription payload")
		}
		return applySubscriptionUpdate(&subscription, eventTime)

	case "customer.subscription.deleted":
		var subscription stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
			return skipped("malformed subscription payload")
		}
		return handleSubscriptionDeleted(&subscription, eventTime)

	case "invoice.payment_succeeded":
		// The authoritative state change arrives through the companion
		// customer.subscription.updated event.
		utils.LogInfo("Invoice payment succeeded, awaiting subscription update event")
		return processed()

	case "invoice.payment_failed":
		return handleInvoicePaymentFailed(event.Data.Raw)

	default:
		return skipped(fmt.Sprintf("unhandled event type: %s", event.Type))
	}
}

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession, eventTime time.Time) Outcome {
	now := time.Now()
	res := db.DB.Model(&models.CheckoutSession{}).
		Where("session_id = ?", session.ID).
		Updates(map[string]interface{}{
			"status":       models.CheckoutCompleted,
			"completed_at": now,
		})
	if res.Error != nil {
		return failed(res.Error)
	}
	if res.RowsAffected == 0 {
		utils.LogInfo("No checkout session row for " + session.ID)
	}

	if session.Subscription == nil || session.Subscription.ID == "" {
		return processed()
	}

	subscription, err := RetrieveSubscription(session.Subscription.ID)
	if err != nil {
		return failed(fmt.Errorf("error retrieving subscription %s: %w", session.Subscription.ID, err))
	}
	return applySubscriptionUpdate(subscription, eventTime)
}

func applySubscriptionUpdate(subscription *stripe.Subscription, eventTime time.Time) Outcome {
	userID := subscription.Metadata[metadataUserKey]
	if userID == "" {
		return skipped("no user id in subscription metadata")
	}

	var existing models.Subscription
	err := db.DB.First(&existing, "stripe_subscription_id = ?", subscription.ID).Error
	if err == nil && existing.LastEventAt.After(eventTime) {
		// An older event delivered after a newer one must not regress
		// the stored state.
		return skipped("stale event for subscription " + subscription.ID)
	}
	if err == nil && existing.Status == models.SubscriptionCanceled {
		// Canceled is terminal per subscription id; a resumed billing
		// relationship arrives under a new Stripe subscription id.
		return skipped("subscription " + subscription.ID + " is already canceled")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return failed(err)
	}

	priceID := subscriptionPriceID(subscription)
	tier := TierForPrice(priceID)
	status := deriveSubscriptionStatus(subscription)
	periodStart, periodEnd := subscriptionPeriod(subscription)

	if err := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"tier":                    tier,
			"subscription_status":     status,
			"subscription_period_end": periodEnd,
		}).Error; err != nil {
		return failed(err)
	}

	row := models.Subscription{
		UserID:               userID,
		StripeSubscriptionId: subscription.ID,
		StripeCustomerId:     subscriptionCustomerID(subscription),
		Status:               status,
		PriceId:              priceID,
		CurrentPeriodStart:   periodStart,
		CurrentPeriodEnd:     periodEnd,
		CancelAtPeriodEnd:    subscription.CancelAtPeriodEnd,
		TrialStart:           unixTimePtr(subscription.TrialStart),
		TrialEnd:             unixTimePtr(subscription.TrialEnd),
		LastEventAt:          eventTime,
	}

	// Upsert keyed by the Stripe subscription id: redelivery of the
	// same event converges to the same row.
	if err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stripe_subscription_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_id", "stripe_customer_id", "status", "price_id",
			"current_period_start", "current_period_end",
			"cancel_at_period_end", "trial_start", "trial_end",
			"last_event_at", "updated_at",
		}),
	}).Create(&row).Error; err != nil {
		return failed(err)
	}

	utils.LogSuccessWithUser(userID, fmt.Sprintf("Subscription %s reconciled to tier %s (%s)", subscription.ID, tier, status))
	return processed()
}

func handleSubscriptionDeleted(subscription *stripe.Subscription, eventTime time.Time) Outcome {
	userID := subscription.Metadata[metadataUserKey]
	if userID == "" {
		return skipped("no user id in subscription metadata")
	}

	_, periodEnd := subscriptionPeriod(subscription)

	// The user keeps access until the period end even though the status
	// already reads canceled.
	if err := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"tier":                    models.TierFree,
			"subscription_status":     models.SubscriptionCanceled,
			"subscription_period_end": periodEnd,
		}).Error; err != nil {
		return failed(err)
	}

	// The deletion stamps last_event_at too, so an update event created
	// before the cancellation but delivered after it fails the
	// staleness check.
	now := time.Now()
	if err := db.DB.Model(&models.Subscription{}).
		Where("stripe_subscription_id = ?", subscription.ID).
		Updates(map[string]interface{}{
			"status":        models.SubscriptionCanceled,
			"canceled_at":   now,
			"last_event_at": eventTime,
		}).Error; err != nil {
		return failed(err)
	}

	utils.LogSuccessWithUser(userID, "Subscription "+subscription.ID+" canceled")
	return processed()
}

func handleInvoicePaymentFailed(raw json.RawMessage) Outcome {
	var invoiceData map[string]interface{}
	if err := json.Unmarshal(raw, &invoiceData); err != nil {
		return skipped("malformed invoice payload")
	}

	stripeSubID := invoiceSubscriptionID(invoiceData)
	if stripeSubID == "" {
		return skipped("invoice has no subscription id")
	}

	subscription, err := RetrieveSubscription(stripeSubID)
	if err != nil {
		return failed(fmt.Errorf("error retrieving subscription %s: %w", stripeSubID, err))
	}

	userID := subscription.Metadata[metadataUserKey]
	if userID == "" {
		return skipped("no user id in subscription metadata")
	}

	// Only the status moves to past_due; the tier is unchanged while
	// Stripe retries the payment.
	if err := db.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("subscription_status", models.SubscriptionPastDue).Error; err != nil {
		return failed(err)
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err == nil && user.Email != "" {
		go notifyPaymentFailed(user.Email)
	}

	utils.LogSuccessWithUser(userID, "Payment failed for subscription "+stripeSubID+", user marked past_due")
	return processed()
}

// deriveSubscriptionStatus maps a Stripe subscription to the stored
// status. An unexpired trial wins over the provider status; otherwise
// active/past_due/canceled are mirrored and anything else is none.
func deriveSubscriptionStatus(subscription *stripe.Subscription) models.SubscriptionStatus {
	if subscription.TrialEnd > 0 && time.Unix(subscription.TrialEnd, 0).After(time.Now()) {
		return models.SubscriptionTrialing
	}
	switch subscription.Status {
	case stripe.SubscriptionStatusActive:
		return models.SubscriptionActive
	case stripe.SubscriptionStatusPastDue:
		return models.SubscriptionPastDue
	case stripe.SubscriptionStatusCanceled:
		return models.SubscriptionCanceled
	default:
		return models.SubscriptionNone
	}
}

func subscriptionPriceID(subscription *stripe.Subscription) string {
	if subscription.Items == nil || len(subscription.Items.Data) == 0 {
		return ""
	}
	item := subscription.Items.Data[0]
	if item.Price == nil {
		return ""
	}
	return item.Price.ID
}

// subscriptionPeriod reads the billing period from the first
// subscription item, where the Stripe API keeps it since the basil
// release.
func subscriptionPeriod(subscription *stripe.Subscription) (time.Time, time.Time) {
	if subscription.Items == nil || len(subscription.Items.Data) == 0 {
		return time.Time{}, time.Time{}
	}
	item := subscription.Items.Data[0]
	return time.Unix(item.CurrentPeriodStart, 0), time.Unix(item.CurrentPeriodEnd, 0)
}

func subscriptionCustomerID(subscription *stripe.Subscription) string {
	if subscription.Customer == nil {
		return ""
	}
	return subscription.Customer.ID
}

// invoiceSubscriptionID digs the subscription id out of an invoice
// payload, looking at parent.subscription_details.subscription first
// and falling back to the legacy top-level field.
func invoiceSubscriptionID(invoiceData map[string]interface{}) string {
	if parent, ok := invoiceData["parent"].(map[string]interface{}); ok {
		if subDetails, ok := parent["subscription_details"].(map[string]interface{}); ok {
			if sub, ok := subDetails["subscription"].(string); ok && sub != "" {
				return sub
			}
		}
	}
	if v, ok := invoiceData["subscription"]; ok && v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func unixTimePtr(ts int64) *time.Time {
	if ts == 0 {
		return nil
	}
	t := time.Unix(ts, 0)
	return &t
}
