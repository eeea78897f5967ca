package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopswift/storefront/models"
)

const (
	UserIDKey   = "userID"
	UserRoleKey = "userRole"
)

// Auth validates the bearer token and stores the caller's id and role in the
// gin context.
func Auth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		idHex, _ := claims["user_id"].(string)
		userID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(UserIDKey, userID)
		c.Set(UserRoleKey, role)
		c.Next()
	}
}

// RequireAdmin gates a route to admin callers. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated caller's id from the context.
func GetUserID(c *gin.Context) (primitive.ObjectID, error) {
	if val, ok := c.Get(UserIDKey); ok {
		if id, ok := val.(primitive.ObjectID); ok {
			return id, nil
		}
	}
	return primitive.NilObjectID, errors.New("user ID not found in context")
}

// GetUserRole extracts the authenticated caller's role from the context.
func GetUserRole(c *gin.Context) string {
	if val, ok := c.Get(UserRoleKey); ok {
		if role, ok := val.(string); ok {
			return role
		}
	}
	return ""
}
