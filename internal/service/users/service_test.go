package users_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
	"github.com/doggr/backend/internal/cache"
	"github.com/doggr/backend/internal/config"
	"github.com/doggr/backend/internal/db"
	"github.com/doggr/backend/internal/service/users"
)

// setupApp spins up an in-memory SQLite DB, a miniredis, and an echo app
// with the users routes wired. Each test gets its own isolated stack.
func setupApp(t *testing.T) (*echo.Echo, *app.AppContext) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Auth.JWTSecret = "test-secret"

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(gdb, redisCache, nil, logger, cfg)

	e := echo.New()
	users.NewRegistrar(appCtx).Register(e)
	return e, appCtx
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRegisterCreatesUserAndIPHistory(t *testing.T) {
	e, appCtx := setupApp(t)

	rec := doJSON(e, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp users.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotZero(t, resp.User.ID)
	assert.NotEmpty(t, resp.IPAddress)

	var stored db.User
	require.NoError(t, appCtx.DB.First(&stored, resp.User.ID).Error)
	assert.NotEqual(t, "pw123", stored.Password, "plaintext must never be stored")
	assert.True(t, auth.CheckPassword(stored.Password, "pw123"))

	var ipCount int64
	appCtx.DB.Model(&db.IPHistory{}).Where("user_id = ?", resp.User.ID).Count(&ipCount)
	assert.Equal(t, int64(1), ipCount)
}

func TestRegisterKeepsPreHashedPassword(t *testing.T) {
	e, appCtx := setupApp(t)

	preHashed, err := auth.HashPassword("pw123")
	require.NoError(t, err)

	body := fmt.Sprintf(`{"name":"Ada","email":"ada@x.com","password":%q}`, preHashed)
	rec := doJSON(e, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored db.User
	require.NoError(t, appCtx.DB.Where("email = ?", "ada@x.com").First(&stored).Error)
	assert.Equal(t, preHashed, stored.Password, "digest must not be hashed twice")
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	e, _ := setupApp(t)

	body := `{"name":"Ada","email":"ada@x.com","password":"pw123"}`
	require.Equal(t, http.StatusOK, doJSON(e, http.MethodPost, "/users", body).Code)
	assert.Equal(t, http.StatusConflict, doJSON(e, http.MethodPost, "/users", body).Code)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	e, _ := setupApp(t)

	rec := doJSON(e, http.MethodPost, "/users", `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	e, appCtx := setupApp(t)

	require.Equal(t, http.StatusOK,
		doJSON(e, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","password":"pw123"}`).Code)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"ada@x.com","password":"pw123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp users.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	ident, err := auth.ParseToken(appCtx.Config.Auth.JWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ada@x.com", ident.Email)
	assert.NotZero(t, ident.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	e, _ := setupApp(t)

	require.Equal(t, http.StatusOK,
		doJSON(e, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","password":"pw123"}`).Code)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"ada@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestLoginUnknownEmail(t *testing.T) {
	e, _ := setupApp(t)

	rec := doJSON(e, http.MethodPost, "/login", `{"email":"ghost@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUsersDirectory(t *testing.T) {
	e, appCtx := setupApp(t)

	require.Equal(t, http.StatusOK,
		doJSON(e, http.MethodPost, "/users", `{"name":"Ada","email":"ada@x.com","password":"pw123"}`).Code)

	// a profile named Spot hides its owner from the directory
	require.Equal(t, http.StatusOK,
		doJSON(e, http.MethodPost, "/users", `{"name":"Bob","email":"bob@x.com","password":"pw123"}`).Code)
	var bob db.User
	require.NoError(t, appCtx.DB.Where("email = ?", "bob@x.com").First(&bob).Error)
	require.NoError(t, appCtx.DB.Create(&db.Profile{Name: "Spot", Picture: "ph.jpg", UserID: bob.ID}).Error)

	rec := doJSON(e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []db.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "ada@x.com", listed[0].Email)
	assert.Empty(t, listed[0].Password)
	require.Len(t, listed[0].IPs, 1)
}
