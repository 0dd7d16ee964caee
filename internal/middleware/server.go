package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"skillboard_backend/internal/logger"
	"skillboard_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionCookieName is the anonymous browser-session cookie used to
// deduplicate endorsements without a login.
const SessionCookieName = "sb_session"

const sessionCookieMaxAge = 365 * 24 * 60 * 60

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		log := logger.FromContext(c.Request.Context())
		fields := []any{
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
			slog.Int("status", c.Writer.Status()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("duration", duration),
			slog.Int("size_bytes", c.Writer.Size()),
		}
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Server Error", fields...)
		} else if c.Writer.Status() >= 400 {
			log.Warn("HTTP Client Error", fields...)
		} else {
			log.Info("HTTP Request", fields...)
		}
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// DBMiddleware puts the database handle into the gin context. A *gorm.DB
// already present on the request context wins, which lets tests run each
// request inside its own transaction.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbKey := string(contextkeys.DBContextKey)
		tx, ok := c.Request.Context().Value(contextkeys.DBContextKey).(*gorm.DB)

		if ok && tx != nil {
			c.Set(dbKey, tx)
		} else {
			c.Set(dbKey, db)
		}

		c.Next()
	}
}

// SessionMiddleware assigns every browser a stable random session key via a
// cookie. The key, not the account, is what deduplicates endorsements.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(SessionCookieName)
		if err != nil || key == "" {
			key = uuid.NewString()
			c.SetCookie(SessionCookieName, key, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set("sessionKey", key)
		c.Next()
	}
}

// GetSessionKey returns the browser session key set by SessionMiddleware.
func GetSessionKey(c *gin.Context) string {
	key, exists := c.Get("sessionKey")
	if !exists {
		return ""
	}
	s, ok := key.(string)
	if !ok {
		return ""
	}
	return s
}
