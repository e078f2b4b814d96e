package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Domenick1991/skyjourney/internal/auth"
	"github.com/gin-gonic/gin"
)

const adminSessionKey = "admin_session"

type Authenticator interface {
	Login(email, password string) (auth.Session, error)
	Authorize(token string) (auth.Session, error)
	Logout(token string)
}

type AuthHandler struct {
	auth Authenticator
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(a Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

func (h *AuthHandler) Register(router gin.IRoutes) {
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

// login answers every credential mismatch with the same message. Bodies
// that cannot be read count as empty; values of the wrong type count as a
// mismatch.
func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			err = auth.ErrInvalidCredentials
		} else {
			err = auth.ErrMissingFields
		}
		c.JSON(statusFor(err), gin.H{"error": auth.Message(err)})
		return
	}

	session, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": auth.Message(err)})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.auth.Logout(token)
	}
	c.Status(http.StatusNoContent)
}

// RequireAdmin rejects requests without a live admin session token.
func RequireAdmin(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := a.Authorize(bearerToken(c))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Set(adminSessionKey, session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
