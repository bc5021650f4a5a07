package middleware

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/mmanthe37/gear-ai-v1/models"
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

func gatedRouter(feature string, authenticated bool) http.Handler {
	r := testutils.SetupTestRouter()
	r.GET("/gated",
		func(c *gin.Context) {
			if authenticated {
				c.Set("user_id", testUserID)
			}
			c.Next()
		},
		RequireFeature(feature),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"reached": true})
		})
	return r
}

func expectUserWithTier(mock sqlmock.Sqlmock, tier string) {
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY "users"."id" LIMIT \$2`).
		WithArgs(testUserID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tier"}).AddRow(testUserID, tier))
}

func TestRequireFeature_GrantedTierPassesThrough(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "pro")

	req, _ := http.NewRequest(http.MethodGet, "/gated", nil)
	resp := httptest.NewRecorder()

	gatedRouter(models.FeatureDiagnostics, true).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "reached")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireFeature_InsufficientTierIsForbidden(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	expectUserWithTier(mock, "free")

	req, _ := http.NewRequest(http.MethodGet, "/gated", nil)
	resp := httptest.NewRecorder()

	gatedRouter(models.FeatureDamageDetection, true).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "premium")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireFeature_MissingUserIsUnauthorized(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	req, _ := http.NewRequest(http.MethodGet, "/gated", nil)
	resp := httptest.NewRecorder()

	gatedRouter(models.FeatureVinScan, false).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
