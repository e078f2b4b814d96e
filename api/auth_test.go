package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Domenick1991/skyjourney/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter() (*gin.Engine, *auth.Authenticator) {
	gin.SetMode(gin.TestMode)
	a := auth.NewAuthenticator("admin@skyjourney.com", "admin123", time.Hour)
	r := gin.New()
	NewAuthHandler(a).Register(r)
	r.GET("/admin/ping", RequireAdmin(a), func(c *gin.Context) {
		session := c.MustGet(adminSessionKey).(auth.Session)
		c.String(http.StatusOK, session.Email)
	})
	return r, a
}

func TestAuthHandler_login(t *testing.T) {
	tests := []struct {
		name     string
		body     loginRequest
		wantCode int
		wantBody string
	}{
		{name: "empty email", body: loginRequest{Password: "admin123"}, wantCode: http.StatusBadRequest, wantBody: `{"error":"Please fill in all fields"}`},
		{name: "empty password", body: loginRequest{Email: "admin@skyjourney.com"}, wantCode: http.StatusBadRequest, wantBody: `{"error":"Please fill in all fields"}`},
		{name: "wrong password", body: loginRequest{Email: "admin@skyjourney.com", Password: "admin"}, wantCode: http.StatusUnauthorized, wantBody: `{"error":"Invalid email or password"}`},
		{name: "unknown email", body: loginRequest{Email: "root@skyjourney.com", Password: "admin123"}, wantCode: http.StatusUnauthorized, wantBody: `{"error":"Invalid email or password"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := authRouter()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", tt.body))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAuthHandler_loginMalformedBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantBody string
	}{
		{name: "number as email", body: `{"email":123,"password":"x"}`, wantCode: http.StatusUnauthorized, wantBody: `{"error":"Invalid email or password"}`},
		{name: "array as password", body: `{"email":"admin@skyjourney.com","password":["admin123"]}`, wantCode: http.StatusUnauthorized, wantBody: `{"error":"Invalid email or password"}`},
		{name: "not json", body: `not json`, wantCode: http.StatusBadRequest, wantBody: `{"error":"Please fill in all fields"}`},
		{name: "empty body", body: ``, wantCode: http.StatusBadRequest, wantBody: `{"error":"Please fill in all fields"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := authRouter()
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestAuthHandler_loginThenLogout(t *testing.T) {
	r, a := authRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/login", loginRequest{Email: "admin@skyjourney.com", Password: "admin123"}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)

	session, err := a.Login("admin@skyjourney.com", "admin123")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@skyjourney.com", w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
