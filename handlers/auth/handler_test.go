package auth

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
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func setupAuthRouter() *gin.Engine {
	r := testutils.SetupTestRouter()
	r.POST("/register", CreateUser)
	r.POST("/login", Login)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateUser_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	w := postJSON(setupAuthRouter(), "/register", gin.H{
		"email":    "new@x.com",
		"password": "Password1",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	w := postJSON(setupAuthRouter(), "/register", gin.H{
		"email":    "not-an-email",
		"password": "Password1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_WeakPassword(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	w := postJSON(setupAuthRouter(), "/register", gin.H{
		"email":    "new@x.com",
		"password": "lowercaseonly",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "lowercase")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "email"}).
		AddRow(uuid.New().String(), "new@x.com")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(rows)

	w := postJSON(setupAuthRouter(), "/register", gin.H{
		"email":    "new@x.com",
		"password": "Password1",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already used")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "email", "password", "role", "enable", "created_at"}).
		AddRow(uuid.New().String(), "new@x.com", string(hash), "USER", true, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(rows)

	w := postJSON(setupAuthRouter(), "/login", gin.H{
		"email":    "new@x.com",
		"password": "Password1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
	assert.Contains(t, w.Body.String(), `"role":"USER"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "email", "password", "role", "enable", "created_at"}).
		AddRow(uuid.New().String(), "new@x.com", string(hash), "USER", true, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(rows)

	w := postJSON(setupAuthRouter(), "/login", gin.H{
		"email":    "new@x.com",
		"password": "WrongPassword1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}
