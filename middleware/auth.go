package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/logger"
)

const tokenKey = "accessToken"

// RequireToken extracts the bearer token and aborts when it is missing.
// Verification happens in the service layer so that every operation applies
// the same guard ordering; this middleware only peels the header.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			logger.Security(logger.EventInvalidToken, "Missing or malformed authorization header", logger.Fields("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authorization header required",
				"code":  "UNAUTHENTICATED",
			})
			return
		}
		c.Set(tokenKey, token)
		c.Next()
	}
}

// OptionalToken stores the bearer token when present. Public listings use it
// to widen visibility for authenticated viewers.
func OptionalToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			c.Set(tokenKey, token)
		}
		c.Next()
	}
}

// AccessToken returns the token stashed by RequireToken or OptionalToken.
func AccessToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
