package stripe

import (
	"net/http"
	"os"

	"github.com/mmanthe37/gear-ai-v1/db"
	"github.com/mmanthe37/gear-ai-v1/models"
	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
)

// trialPeriodDays is granted on every new subscription checkout.
const trialPeriodDays = 7

// Stripe API calls behind package variables so tests can stub the
// provider.
var (
	getStripeCustomer = func(id string) (*stripe.Customer, error) {
		return customer.Get(id, nil)
	}
	newStripeCustomer = func(params *stripe.CustomerParams) (*stripe.Customer, error) {
		return customer.New(params)
	}
	newCheckoutSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return session.New(params)
	}
	newPortalSession = func(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
		return portalsession.New(params)
	}
)

func appURL() string {
	if url := os.Getenv("APP_URL"); url != "" {
		return url
	}
	return "exp://localhost:8081"
}

type checkoutInput struct {
	PriceId string `json:"priceId" binding:"required"`
}

// ensureStripeCustomer returns the user's Stripe customer id, creating
// and persisting one on first checkout so the local-user-to-customer
// mapping stays stable afterwards.
func ensureStripeCustomer(user *models.User) (string, error) {
	if user.StripeCustomerId != "" {
		// Verify the customer still exists on Stripe before reusing it
		if _, err := getStripeCustomer(user.StripeCustomerId); err == nil {
			return user.StripeCustomerId, nil
		}
		user.StripeCustomerId = ""
	}

	cust, err := newStripeCustomer(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Metadata: map[string]string{
			metadataUserKey: user.ID,
		},
	})
	if err != nil {
		return "", err
	}

	if err := db.DB.Model(user).Update("stripe_customer_id", cust.ID).Error; err != nil {
		return "", err
	}
	user.StripeCustomerId = cust.ID
	return cust.ID, nil
}

// CreateCheckoutSession starts a Stripe Checkout flow for a
// subscription upgrade and records the attempt for auditing.
// @Summary Create a Stripe Checkout session
// @Description Start a Stripe payment for a subscription plan. Returns the Stripe session id and hosted checkout URL.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param input body checkoutInput true "Price id of the plan to subscribe to"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: Stripe Checkout session id, url: hosted checkout URL"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions/checkout [post]
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input checkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: priceId"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	customerID, err := ensureStripeCustomer(&user)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreateCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the Stripe customer"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(customerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(input.PriceId),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(appURL() + "/subscription/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(appURL() + "/subscription/plans"),
		Metadata: map[string]string{
			metadataUserKey: user.ID,
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				metadataUserKey: user.ID,
			},
			TrialPeriodDays: stripe.Int64(trialPeriodDays),
		},
	}

	s, err := newCheckoutSession(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session in CreateCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}

	record := models.CheckoutSession{
		SessionId: s.ID,
		UserID:    user.ID,
		PriceId:   input.PriceId,
		Status:    models.CheckoutPending,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error recording the checkout session in CreateCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording the checkout session"})
		return
	}

	utils.LogSuccessWithUser(userID, "Stripe checkout session created in CreateCheckoutSession")
	c.JSON(http.StatusOK, gin.H{"sessionId": s.ID, "url": s.URL})
}

// CreatePortalSession opens the Stripe billing portal for the user.
// @Summary Create a Stripe billing portal session
// @Description Create a Stripe customer portal session so the user can manage billing. Returns the hosted portal URL.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "url: hosted portal URL"
// @Failure 400 {object} map[string]string "error: No Stripe customer for this user"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: User not found"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /subscriptions/portal [post]
func CreatePortalSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreatePortalSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreatePortalSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.StripeCustomerId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No Stripe customer found for this user"})
		return
	}

	s, err := newPortalSession(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(user.StripeCustomerId),
		ReturnURL: stripe.String(appURL() + "/subscription/manage"),
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the portal session in CreatePortalSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open billing portal"})
		return
	}

	utils.LogSuccessWithUser(userID, "Stripe portal session created in CreatePortalSession")
	c.JSON(http.StatusOK, gin.H{"url": s.URL})
}
