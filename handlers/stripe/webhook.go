package stripe

import (
	"io"
	"net/http"
	"os"

	"github.com/mmanthe37/gear-ai-v1/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler receives payment-provider event deliveries.
// Signature verification is the security boundary: nothing touches the
// database before it passes.
// @Summary Stripe webhook endpoint
// @Description Receives and processes Stripe webhook events (checkout, subscription lifecycle, invoices)
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool "received: true"
// @Failure 400 {object} map[string]string "message: signature verification failed"
// @Failure 500 {object} map[string]string "message: processing error"
// @Router /stripe/webhook [post]
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		utils.LogError(err, "Stripe signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Stripe signature verification failed"})
		return
	}

	outcome := ProcessEvent(event)
	if outcome.Status == OutcomeFailed {
		message := "Internal server error"
		if outcome.Err != nil {
			message = outcome.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": message})
		return
	}

	// Skipped events are acknowledged too, so Stripe stops redelivering
	// events we will never be able to process.
	c.JSON(http.StatusOK, gin.H{"received": true})
}
