package routes

import (
	"github.com/mmanthe37/gear-ai-v1/handlers/stripe"
	"github.com/mmanthe37/gear-ai-v1/middleware"

	"github.com/gin-gonic/gin"
)

func StripeRoutes(r *gin.Engine) {
	subscriptionRoutes := r.Group("/subscriptions")
	{
		subscriptionRoutes.GET("/plans", stripe.GetPlans)

		authenticated := subscriptionRoutes.Group("")
		authenticated.Use(middleware.JWTAuth())
		{
			authenticated.POST("/checkout", stripe.CreateCheckoutSession)
			authenticated.POST("/portal", stripe.CreatePortalSession)
			authenticated.GET("/status", stripe.GetSubscriptionStatus)
			authenticated.GET("/trial", stripe.GetTrialStatus)
		}
	}
	r.POST("/stripe/webhook", stripe.StripeWebhookHandler)
}
