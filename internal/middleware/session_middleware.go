package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDHeader carries the guest cart session identifier
const SessionIDHeader = "X-Session-ID"

const sessionIDKey = "cart_session_id"

// CartSession ensures every request on the cart/checkout routes carries a
// session ID. New visitors get a fresh UUID, echoed back in the response
// header so the client can persist it.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(sessionIDKey, sessionID)
		c.Header(SessionIDHeader, sessionID)

		c.Next()
	}
}

// GetSessionID extracts the cart session ID from context
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
