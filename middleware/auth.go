package middleware

import (
	"errors"
	"net/http"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token method is valid
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func ValidateToken(c *gin.Context) {
	// Get the token from the header
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	// Guest sessions carry a valid token too, but never a customer
	// identity. Letting one through would re-key carts to a guest id.
	if role, _ := claims["role"].(string); role == "guest" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Customer account required"})
		c.Abort()
		return
	}

	// Set the user info in the context for further use
	c.Set("customer_id", claims["customer_id"])
	c.Set("role", claims["role"])

	c.Next()
}

// OptionalToken attaches the customer identity when a valid token is
// present and passes the request through otherwise. Used by the cart
// endpoints that serve both guests and logged-in customers.
func OptionalToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString != "" {
		if claims, err := parseToken(tokenString); err == nil {
			if role, _ := claims["role"].(string); role != "guest" {
				c.Set("customer_id", claims["customer_id"])
				c.Set("role", role)
			}
		}
	}
	c.Next()
}
