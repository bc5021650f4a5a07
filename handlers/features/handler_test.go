package features

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/mmanthe37/gear-ai-v1/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testUserID = "a1b2c3d4-0000-0000-0000-000000000001"

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func featuresRouter() http.Handler {
	r := testutils.SetupTestRouter()
	r.GET("/features/vehicle-limit", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CheckVehicleLimit(c)
	})
	r.GET("/features/:feature/access", func(c *gin.Context) {
		c.Set("user_id", testUserID)
		CheckFeatureAccess(c)
	})
	return r
}

func expectUserWithTier(mock sqlmock.Sqlmock, tier string) {
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(testUserID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "tier"}).
			AddRow(testUserID, "driver@example.com", tier))
}

func getJSON(t *testing.T, router http.Handler, path string) (int, map[string]interface{}) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	return resp.Code, body
}

func TestCheckFeatureAccess_FreeUserDeniedAIChat(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "free")

	code, body := getJSON(t, featuresRouter(), "/features/ai_manual_chat/access")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["hasAccess"])
	assert.Equal(t, "free", body["currentTier"])
	assert.Equal(t, "pro", body["tierRequired"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckFeatureAccess_PremiumUserHasDamageDetection(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "premium")

	code, body := getJSON(t, featuresRouter(), "/features/damage_detection/access")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["hasAccess"])
	assert.Equal(t, "premium", body["currentTier"])
	assert.NotContains(t, body, "tierRequired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckFeatureAccess_UnknownFeatureDeniedWithoutUpgrade(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "dealer")

	code, body := getJSON(t, featuresRouter(), "/features/teleportation/access")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["hasAccess"])
	assert.NotContains(t, body, "tierRequired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckFeatureAccess_UnknownStoredTierTreatedAsFree(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "legacy_gold")

	code, body := getJSON(t, featuresRouter(), "/features/vin_scan/access")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["hasAccess"])
	assert.Equal(t, "free", body["currentTier"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckVehicleLimit_FreeUserAtQuota(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "free")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "vehicles" WHERE user_id = \$1`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	code, body := getJSON(t, featuresRouter(), "/features/vehicle-limit")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["canAdd"])
	assert.Equal(t, float64(1), body["limit"])
	assert.Equal(t, "pro", body["tierRequired"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckVehicleLimit_ProUserUnderQuota(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "pro")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "vehicles" WHERE user_id = \$1`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	code, body := getJSON(t, featuresRouter(), "/features/vehicle-limit")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["canAdd"])
	assert.Equal(t, float64(3), body["limit"])
	assert.NotContains(t, body, "tierRequired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckVehicleLimit_DealerIsUnlimited(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "dealer")
	mock.ExpectQuery(`SELECT count\(\*\) FROM "vehicles" WHERE user_id = \$1`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(250))

	code, body := getJSON(t, featuresRouter(), "/features/vehicle-limit")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["canAdd"])
	assert.Equal(t, "unlimited", body["limit"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
