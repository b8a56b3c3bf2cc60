package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// AuthOptional accepts anonymous requests. When secret is set and a Bearer
// token is sent, the token must verify; its user_id (or sub) claim becomes
// the request's user id.
func AuthOptional(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if secret == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}

		userID, err := userFromToken(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "invalid token",
				"code":       "unauthorized",
				"message":    err.Error(),
				"request_id": GetRequestID(c),
			})
			return
		}
		if userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func userFromToken(raw string, key []byte) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims")
	}
	for _, k := range []string{"user_id", "sub"} {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			return fmt.Sprintf("%.0f", v), nil
		}
	}
	return "", nil
}

// GetUserID returns the authenticated user id, if any.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
