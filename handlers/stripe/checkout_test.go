package stripe

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmanthe37/gear-ai-v1/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	stripe "github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
)

func checkoutRouter() http.Handler {
	r := testutils.SetupTestRouter()
	r.POST("/subscriptions/checkout", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CreateCheckoutSession(c)
	})
	r.POST("/subscriptions/portal", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CreatePortalSession(c)
	})
	return r
}

func expectUserLookup(mock sqlmock.Sqlmock, stripeCustomerID string) {
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(testUserID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "tier", "stripe_customer_id"}).
			AddRow(testUserID, "driver@example.com", "free", stripeCustomerID))
}

func postCheckout(t *testing.T, router http.Handler, priceID string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"priceId": priceID})
	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateCheckoutSession_FirstCheckoutCreatesCustomer(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	originalNewCustomer := newStripeCustomer
	newStripeCustomer = func(params *stripe.CustomerParams) (*stripe.Customer, error) {
		assert.Equal(t, "driver@example.com", *params.Email)
		assert.Equal(t, testUserID, params.Metadata["user_id"])
		return &stripe.Customer{ID: "cus_123"}, nil
	}
	defer func() { newStripeCustomer = originalNewCustomer }()

	originalNewSession := newCheckoutSession
	newCheckoutSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		assert.Equal(t, "cus_123", *params.Customer)
		assert.Equal(t, testProPrice, *params.LineItems[0].Price)
		assert.Equal(t, testUserID, params.SubscriptionData.Metadata["user_id"])
		assert.Equal(t, int64(7), *params.SubscriptionData.TrialPeriodDays)
		return &stripe.CheckoutSession{ID: "cs_123", URL: "https://checkout.stripe.com/c/pay/cs_123"}, nil
	}
	defer func() { newCheckoutSession = originalNewSession }()

	expectUserLookup(mock, "")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET "stripe_customer_id"=\$1,"updated_at"=\$2 WHERE (.+) = \$3`).
		WithArgs("cus_123", sqlmock.AnyArg(), testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "checkout_sessions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("checkout-row-uuid"))
	mock.ExpectCommit()

	resp := postCheckout(t, checkoutRouter(), testProPrice)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "cs_123", body["sessionId"])
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_123", body["url"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCheckoutSession_ReusesExistingCustomer(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	originalGetCustomer := getStripeCustomer
	getStripeCustomer = func(id string) (*stripe.Customer, error) {
		assert.Equal(t, "cus_123", id)
		return &stripe.Customer{ID: id}, nil
	}
	defer func() { getStripeCustomer = originalGetCustomer }()

	originalNewCustomer := newStripeCustomer
	newStripeCustomer = func(*stripe.CustomerParams) (*stripe.Customer, error) {
		t.Fatal("a new customer must not be created when one already exists")
		return nil, nil
	}
	defer func() { newStripeCustomer = originalNewCustomer }()

	originalNewSession := newCheckoutSession
	newCheckoutSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		assert.Equal(t, "cus_123", *params.Customer)
		return &stripe.CheckoutSession{ID: "cs_124", URL: "https://checkout.stripe.com/c/pay/cs_124"}, nil
	}
	defer func() { newCheckoutSession = originalNewSession }()

	expectUserLookup(mock, "cus_123")

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "checkout_sessions" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("checkout-row-uuid"))
	mock.ExpectCommit()

	resp := postCheckout(t, checkoutRouter(), testProPrice)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCheckoutSession_MissingPriceId(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/checkout", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	checkoutRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCheckoutSession_UserNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(testUserID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	resp := postCheckout(t, checkoutRouter(), testProPrice)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePortalSession_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	originalNewPortal := newPortalSession
	newPortalSession = func(params *stripe.BillingPortalSessionParams) (*stripe.BillingPortalSession, error) {
		assert.Equal(t, "cus_123", *params.Customer)
		return &stripe.BillingPortalSession{URL: "https://billing.stripe.com/p/session/test"}, nil
	}
	defer func() { newPortalSession = originalNewPortal }()

	expectUserLookup(mock, "cus_123")

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/portal", nil)
	resp := httptest.NewRecorder()

	checkoutRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "https://billing.stripe.com/p/session/test", body["url"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePortalSession_NoCustomer(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserLookup(mock, "")

	req, _ := http.NewRequest(http.MethodPost, "/subscriptions/portal", nil)
	resp := httptest.NewRecorder()

	checkoutRouter().ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
