package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/notify"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"

	contextKeyRequestID     = "request_id"
	contextKeyUser          = "user"
	contextKeyNotifications = "notifications"

	msgLoginRequired = "يرجى تسجيل الدخول أولاً"
)

// RequestID tags every request with an id, reusing the caller's if present
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// Notifications collects the toasts raised while serving the request so
// handlers can return them with the response.
func Notifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := &notify.Recorder{}
		c.Set(contextKeyNotifications, rec)
		c.Request = c.Request.WithContext(notify.WithNotifier(c.Request.Context(), rec))
		c.Next()
	}
}

// DrainNotifications returns the toasts recorded so far
func DrainNotifications(c *gin.Context) []notify.Notification {
	v, ok := c.Get(contextKeyNotifications)
	if !ok {
		return []notify.Notification{}
	}
	return v.(*notify.Recorder).Drain()
}

// SessionMiddleware resolves the storefront user from X-User-ID
func SessionMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			logger.Debug("Request without session", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":         msgLoginRequired,
				"notifications": []notify.Notification{{Level: notify.LevelError, Message: msgLoginRequired}},
			})
			return
		}

		user := &domain.User{
			ID:   userID,
			Name: strings.TrimSpace(c.GetHeader(HeaderUserName)),
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// GetUserFromContext returns the user set by SessionMiddleware
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// AdminMiddleware checks the bearer key against the configured bcrypt hash
func AdminMiddleware(keyHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			logger.Warn("Admin request rejected, ADMIN_API_KEY_HASH is not set")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access is not configured"})
			return
		}

		auth := c.GetHeader("Authorization")
		key := strings.TrimPrefix(auth, "Bearer ")
		if auth == "" || key == auth {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			logger.Warn("Invalid admin key", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			return
		}

		c.Next()
	}
}
