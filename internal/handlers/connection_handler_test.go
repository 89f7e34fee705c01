package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HasanApplore/Harmony.AI/internal/models"
	"github.com/HasanApplore/Harmony.AI/internal/repositories"
	"github.com/HasanApplore/Harmony.AI/internal/services"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// nopNotificationRepository discards notifications in handler tests.
type nopNotificationRepository struct{}

func (nopNotificationRepository) CreateNotification(context.Context, *models.Notification) error {
	return nil
}

func (nopNotificationRepository) GetByRecipientID(context.Context, uint, int, int) ([]models.Notification, error) {
	return nil, nil
}

func (nopNotificationRepository) GetUnreadCount(context.Context, uint) (int64, error) {
	return 0, nil
}

func (nopNotificationRepository) MarkAsRead(context.Context, string, uint) error { return nil }

func (nopNotificationRepository) MarkAllAsRead(context.Context, uint) error { return nil }

type handlerFixture struct {
	echo        *echo.Echo
	users       []models.User
	userRepo    repositories.UserRepository
	connections *ConnectionHandler
	userHandler *UserHandler
}

func newHandlerFixture(t *testing.T, userCount int) *handlerFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A pooled second connection to :memory: would see an empty database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Connection{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if err := repositories.MigrateConnectionIndexes(db); err != nil {
		t.Fatalf("Failed to create connection indexes: %v", err)
	}

	users := make([]models.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		user := models.User{Username: fmt.Sprintf("user%d", i), Name: fmt.Sprintf("User %d", i), Title: "Engineer"}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("Failed to seed user: %v", err)
		}
		users = append(users, user)
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	service := services.NewConnectionService(
		repositories.NewPostgresConnectionRepository(db),
		userRepo,
		nopNotificationRepository{},
	)

	return &handlerFixture{
		echo:        echo.New(),
		users:       users,
		userRepo:    userRepo,
		connections: NewConnectionHandler(service),
		userHandler: NewUserHandler(userRepo, service),
	}
}

// request builds an authenticated echo context the way the JWT middleware
// leaves it, plus a recorder for the response.
func (f *handlerFixture) request(method, target string, body string, actingUserID uint) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	if actingUserID != 0 {
		c.Set("user", &models.JwtCustomClaims{
			UserID:           actingUserID,
			RegisteredClaims: jwt.RegisteredClaims{},
		})
	}
	return c, rec
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestSendRequestEndpoint(t *testing.T) {
	f := newHandlerFixture(t, 2)
	a, b := f.users[0].ID, f.users[1].ID

	body := fmt.Sprintf(`{"receiverId": %d}`, b)
	c, rec := f.request(http.MethodPost, "/api/v1/connections", body, a)

	assert.NoError(t, f.connections.SendRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var conn models.Connection
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conn))
	assert.Equal(t, a, conn.RequesterID)
	assert.Equal(t, b, conn.ReceiverID)
	assert.Equal(t, models.ConnectionStatusPending, conn.Status)
}

func TestSendRequestEndpointErrors(t *testing.T) {
	f := newHandlerFixture(t, 2)
	a, b := f.users[0].ID, f.users[1].ID

	// Unauthenticated
	c, _ := f.request(http.MethodPost, "/api/v1/connections", `{"receiverId": 2}`, 0)
	assert.Equal(t, http.StatusUnauthorized, httpErrorCode(t, f.connections.SendRequest(c)))

	// Self connection
	c, _ = f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, a), a)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, f.connections.SendRequest(c)))

	// Unknown receiver
	c, _ = f.request(http.MethodPost, "/api/v1/connections", `{"receiverId": 9999}`, a)
	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, f.connections.SendRequest(c)))

	// Duplicate
	c, _ = f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, b), a)
	assert.NoError(t, f.connections.SendRequest(c))
	c, _ = f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, b), a)
	assert.Equal(t, http.StatusConflict, httpErrorCode(t, f.connections.SendRequest(c)))
}

func TestRespondToRequestEndpoint(t *testing.T) {
	f := newHandlerFixture(t, 3)
	a, b, c3 := f.users[0].ID, f.users[1].ID, f.users[2].ID

	c, rec := f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, b), a)
	assert.NoError(t, f.connections.SendRequest(c))
	var created models.Connection
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	connID := fmt.Sprintf("%d", created.ID)

	// A third party may not resolve the request.
	c, _ = f.request(http.MethodPatch, "/api/v1/connections/"+connID, `{"status":"accepted"}`, c3)
	c.SetParamNames("id")
	c.SetParamValues(connID)
	assert.Equal(t, http.StatusForbidden, httpErrorCode(t, f.connections.RespondToRequest(c)))

	// An unknown status fails validation.
	c, _ = f.request(http.MethodPatch, "/api/v1/connections/"+connID, `{"status":"cancelled"}`, b)
	c.SetParamNames("id")
	c.SetParamValues(connID)
	assert.Equal(t, http.StatusBadRequest, httpErrorCode(t, f.connections.RespondToRequest(c)))

	// The receiver accepts.
	c, rec = f.request(http.MethodPatch, "/api/v1/connections/"+connID, `{"status":"accepted"}`, b)
	c.SetParamNames("id")
	c.SetParamValues(connID)
	assert.NoError(t, f.connections.RespondToRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var updated models.Connection
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.ConnectionStatusAccepted, updated.Status)

	// A second response conflicts.
	c, _ = f.request(http.MethodPatch, "/api/v1/connections/"+connID, `{"status":"rejected"}`, b)
	c.SetParamNames("id")
	c.SetParamValues(connID)
	assert.Equal(t, http.StatusConflict, httpErrorCode(t, f.connections.RespondToRequest(c)))

	// Missing connection.
	c, _ = f.request(http.MethodPatch, "/api/v1/connections/9999", `{"status":"accepted"}`, b)
	c.SetParamNames("id")
	c.SetParamValues("9999")
	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, f.connections.RespondToRequest(c)))
}

func TestListEndpoints(t *testing.T) {
	f := newHandlerFixture(t, 2)
	a, b := f.users[0].ID, f.users[1].ID

	c, rec := f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, b), a)
	assert.NoError(t, f.connections.SendRequest(c))
	var created models.Connection
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Pending list for the receiver shows the requester.
	c, rec = f.request(http.MethodGet, "/api/v1/connections/pending", "", b)
	assert.NoError(t, f.connections.ListPending(c))
	var pending []models.ConnectionWithUser
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	assert.Len(t, pending, 1)
	assert.Equal(t, a, pending[0].User.ID)

	// Connections list is empty until accepted.
	c, rec = f.request(http.MethodGet, "/api/v1/connections", "", a)
	assert.NoError(t, f.connections.ListConnections(c))
	var conns []models.ConnectionWithUser
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conns))
	assert.Empty(t, conns)

	connID := fmt.Sprintf("%d", created.ID)
	c, _ = f.request(http.MethodPatch, "/api/v1/connections/"+connID, `{"status":"accepted"}`, b)
	c.SetParamNames("id")
	c.SetParamValues(connID)
	assert.NoError(t, f.connections.RespondToRequest(c))

	c, rec = f.request(http.MethodGet, "/api/v1/connections", "", a)
	assert.NoError(t, f.connections.ListConnections(c))
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conns))
	assert.Len(t, conns, 1)
	assert.Equal(t, b, conns[0].User.ID)
}

func TestDiscoverEndpoint(t *testing.T) {
	f := newHandlerFixture(t, 4)
	a, b, c3 := f.users[0].ID, f.users[1].ID, f.users[2].ID

	// a <-> b accepted; c -> a pending.
	c, rec := f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, b), a)
	assert.NoError(t, f.connections.SendRequest(c))
	var created models.Connection
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	connID := fmt.Sprintf("%d", created.ID)
	c, _ = f.request(http.MethodPatch, "/api/v1/connections/"+connID, `{"status":"accepted"}`, b)
	c.SetParamNames("id")
	c.SetParamValues(connID)
	assert.NoError(t, f.connections.RespondToRequest(c))

	c, _ = f.request(http.MethodPost, "/api/v1/connections", fmt.Sprintf(`{"receiverId": %d}`, a), c3)
	assert.NoError(t, f.connections.SendRequest(c))

	// For a, only user4 remains discoverable: b is connected, c is pending.
	c, rec = f.request(http.MethodGet, "/api/v1/users/discover", "", a)
	assert.NoError(t, f.userHandler.Discover(c))
	var discoverable []models.User
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &discoverable))
	assert.Len(t, discoverable, 1)
	assert.Equal(t, f.users[3].ID, discoverable[0].ID)

	// A non-matching search term filters everyone out.
	c, rec = f.request(http.MethodGet, "/api/v1/users/discover?q=architect", "", a)
	assert.NoError(t, f.userHandler.Discover(c))
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &discoverable))
	assert.Empty(t, discoverable)
}

func TestSuggestedMessageEndpoint(t *testing.T) {
	f := newHandlerFixture(t, 2)
	a := f.users[0].ID
	targetID := fmt.Sprintf("%d", f.users[1].ID)

	c, rec := f.request(http.MethodGet, "/api/v1/users/"+targetID+"/suggested-message", "", a)
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	assert.NoError(t, f.userHandler.SuggestedMessage(c))

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], f.users[1].Name)

	// Unknown target.
	c, _ = f.request(http.MethodGet, "/api/v1/users/9999/suggested-message", "", a)
	c.SetParamNames("id")
	c.SetParamValues("9999")
	assert.Equal(t, http.StatusNotFound, httpErrorCode(t, f.userHandler.SuggestedMessage(c)))
}
