package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// ContextOwnerKey is the gin context key carrying the owner key for log rows:
// the authenticated user's ID in the cloud variant, LocalOwner otherwise.
const ContextOwnerKey = "owner"

// LocalOwner is the fixed owner key of the unauthenticated local variant.
const LocalOwner = "local"

// jwtClaims defines the structure we expect in the JWT payload.
// Mirroring the structure used in authService.generateJWT.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextOwnerKey, claims.UserID)
		c.Next()
	}
}

// LocalOwnerMiddleware stands in for AuthMiddleware in the local variant:
// every request acts on the single local collection.
func LocalOwnerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextOwnerKey, LocalOwner)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get the owner key from context (used by handlers)
func getOwnerFromContext(c *gin.Context) (string, error) {
	ownerRaw, exists := c.Get(ContextOwnerKey)
	if !exists {
		return "", errors.New("owner key not found in context")
	}
	owner, ok := ownerRaw.(string)
	if !ok {
		return "", errors.New("invalid owner key type in context")
	}
	return owner, nil
}
