package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie checked when no bearer header is sent.
	CookieName = "wirewatch_jwt"

	// Context keys populated on successful authentication.
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
)

// Auth validates JWTs minted by the auth handlers. The secret is injected at
// construction; nothing here touches the environment.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// Required aborts with 401 unless the request carries a valid token.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := a.identify(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(CtxUserID, userID)
		c.Set(CtxUserEmail, email)
		c.Next()
	}
}

// Optional tags the request with the viewer's identity when a valid token is
// present and continues either way. Anonymous viewers still reach the gated
// content endpoints; the gate decides what they see.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, email, ok := a.identify(c); ok {
			c.Set(CtxUserID, userID)
			c.Set(CtxUserEmail, email)
		}
		c.Next()
	}
}

func (a *Auth) identify(c *gin.Context) (userID, email string, ok bool) {
	tokenString := ""

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if tokenString == "" {
		if cookie, err := c.Cookie(CookieName); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		return "", "", false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}

	userID, _ = claims["user_id"].(string)
	email, _ = claims["email"].(string)
	return userID, email, userID != ""
}
