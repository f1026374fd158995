package ads

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"kenflash-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func setupAdsRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/ads", CreateAdCampaign)
	r.PATCH("/ads/:campaignId", ReviewAdCampaign)
	return r
}

func TestCreateAdCampaign_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ad_campaigns"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	body, _ := json.Marshal(gin.H{
		"businessName": "Mama Njeri Shop",
		"email":        "ads@mamanjeri.co.ke",
		"headline":     "Fresh produce daily",
		"budgetKes":    500,
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/ads", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	setupAdsRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Campaign request submitted successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdCampaign_MissingFields(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	body, _ := json.Marshal(gin.H{"email": "ads@mamanjeri.co.ke"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/ads", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	setupAdsRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdCampaign_Approve(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	campaignID := uuid.New().String()
	rows := sqlmock.NewRows([]string{"id", "business_name", "email", "headline", "status", "submitted_at"}).
		AddRow(campaignID, "Mama Njeri Shop", "ads@mamanjeri.co.ke", "Fresh produce daily", "PENDING", time.Now())
	mock.ExpectQuery(`SELECT \* FROM "ad_campaigns" WHERE id = \$1`).
		WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "ad_campaigns" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, _ := json.Marshal(gin.H{"status": "APPROVED"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/ads/"+campaignID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	setupAdsRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Campaign reviewed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdCampaign_InvalidStatus(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	body, _ := json.Marshal(gin.H{"status": "MAYBE"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/ads/"+uuid.New().String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	setupAdsRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAdCampaign_InvalidID(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	body, _ := json.Marshal(gin.H{"status": "APPROVED"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/ads/not-a-uuid", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	setupAdsRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid campaign ID")
	assert.NoError(t, mock.ExpectationsWereMet())
}
