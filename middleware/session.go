package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farm-fresh/models"
	"farm-fresh/services"
	"farm-fresh/utils"
)

const (
	SessionKey   = "session"
	SessionIDKey = "session_id"
)

// SessionMiddleware resolves the Bearer token to a live session. The token
// query parameter is accepted too, since EventSource cannot set headers.
func SessionMiddleware(secret string, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		sess, err := sessions.Get(claims.SessionID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Session expired, start a new one",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(SessionKey, sess)
		c.Set(SessionIDKey, sess.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if t := c.Query("token"); t != "" {
			return t, true
		}
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
		return "", false
	}
	return tokenParts[1], true
}

// CurrentSession returns the session set by SessionMiddleware.
func CurrentSession(c *gin.Context) *services.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*services.Session)
	return sess
}
