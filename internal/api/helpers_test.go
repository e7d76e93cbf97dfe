package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"bountyboard/internal/domain"
	"bountyboard/internal/middleware"
	"bountyboard/internal/store"
	"bountyboard/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the handlers the way cmd/server does, with caching
// and geocoding disabled.
func newTestRouter(s *store.Stores) *gin.Engine {
	r := gin.New()
	r.POST("/register", RegisterHandler(s.Users, ""))
	r.POST("/login", LoginHandler(s.Users, testSecret))

	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(testSecret), middleware.ActiveUserMiddleware(s.Users))
	authed.GET("/profile/:id", ProfileHandler(s, nil))
	authed.POST("/profile/:id", ProfileActionHandler(s, nil, nil))
	authed.GET("/tasks", TasksHandler(s))
	authed.POST("/tasks", TaskActionHandler(s))
	authed.GET("/notifications", ListNotificationsHandler(s))
	authed.POST("/notifications/:id/read", MarkNotificationReadHandler(s))

	adminGroup := authed.Group("/admin")
	adminGroup.Use(middleware.AdminOnlyMiddleware(s.Users))
	adminGroup.GET("/users", ListUsersHandler(s, nil))
	adminGroup.GET("/transactions", ListTransactionsHandler(s, nil))
	adminGroup.POST("/transactions/:id/complete", SettleTransactionHandler(s, nil, true))
	adminGroup.POST("/transactions/:id/fail", SettleTransactionHandler(s, nil, false))
	return r
}

// seedUser creates an active user directly in the store and returns its id
// with a valid session token.
func seedUser(t *testing.T, s *store.Stores, username, email string) (string, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := s.Users.Create(store.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	token, err := utils.GenerateJWT(u.UserID, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return u.UserID, token
}

// seedOperator is seedUser plus the admin role.
func seedOperator(t *testing.T, s *store.Stores, username, email string) (string, string) {
	t.Helper()
	id, token := seedUser(t, s, username, email)
	if err := s.Users.SetRole(id, domain.RoleAdmin); err != nil {
		t.Fatalf("set role: %v", err)
	}
	return id, token
}

// postForm sends an urlencoded form the way the profile and task pages do.
func postForm(r *gin.Engine, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
