package middleware

import (
	"strconv"
	"strings"

	"github.com/conectahub/backend/internal/utils"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextEmail    = "email"
	ContextUserType = "user_type"
)

// bearerClaims extracts and verifies the token of a "Bearer <token>" header.
// ok is false when no Authorization header was sent at all.
func bearerClaims(c *gin.Context) (claims *utils.Claims, ok bool, err error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, true, response.NewUnauthorized("invalid authorization header format")
	}

	claims, err = utils.ParseToken(parts[1])
	if err != nil {
		return nil, true, response.NewUnauthorized("invalid or expired token")
	}
	return claims, true, nil
}

func setIdentity(c *gin.Context, claims *utils.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextUserType, claims.UserType)
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, present, err := bearerClaims(c)
		if !present {
			response.Unauthorized(c, "authorization header required")
			c.Abort()
			return
		}
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// Identify records the caller when a bearer token is sent and lets anonymous
// requests through. A token that is present but invalid is still a 401.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, present, err := bearerClaims(c)
		if present && err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if present {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// SelfOnly forbids a known caller from acting on another user's profile.
// param names the route parameter holding the target user id.
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID := GetUserID(c)
		if callerID == 0 {
			c.Next()
			return
		}
		target, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err == nil && uint(target) != callerID {
			response.Error(c, response.NewForbidden("you can only change your own profile"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id, or 0 for anonymous callers.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

func GetEmail(c *gin.Context) string {
	return c.GetString(ContextEmail)
}

func GetUserType(c *gin.Context) string {
	return c.GetString(ContextUserType)
}
