// auth.go - JWT authentication middleware
// This file resolves who is calling and guards profile changes.
//
// Identity Flow:
// 1. Extract an optional JWT token from the Authorization header
// 2. Validate token signature and expiration
// 3. Store the user ID in the context for handlers
//
// The userId request parameter stays supported; when a token is present it
// must agree with it.

package middleware // Declares the package name

import ( // Import required packages
	"strconv" // Parsing userId parameters
	"strings" // String operations (for header parsing)

	"go-blog-backend/apperrors"  // Failure taxonomy
	"go-blog-backend/auth"       // Token verification
	"go-blog-backend/models"     // Role names
	"go-blog-backend/repository" // User lookups for role checks

	"github.com/gin-gonic/gin" // Gin web framework (for middleware)
)

const userIDKey = "user_id"

// Identity - Returns a Gin middleware that authenticates an optional bearer token.
// Requests without an Authorization header pass through anonymously; a header
// that is present but malformed or invalid is rejected with 401.
func Identity(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			AbortWithError(c, apperrors.Unauthorized("missing or invalid token"))
			return
		}

		userID, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			AbortWithError(c, apperrors.Unauthorized("invalid token"))
			return
		}
		c.Set(userIDKey, userID) // Store user ID in Gin context
		c.Next()
	}
}

// RequireToken - Rejects anonymous callers when enabled is true.
func RequireToken(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			if _, ok := TokenUserID(c); !ok {
				AbortWithError(c, apperrors.Unauthorized("missing or invalid token"))
				return
			}
		}
		c.Next()
	}
}

// TokenUserID returns the user ID proven by the bearer token, if any.
func TokenUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CallerID resolves the acting user from the token and the userId parameter
// (query string or form field). It returns nil when neither is present. A
// token that disagrees with the parameter is forbidden.
func CallerID(c *gin.Context) (*uint, error) {
	raw := c.Query("userId")
	if raw == "" {
		raw = c.PostForm("userId")
	}

	var param *uint
	if raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, apperrors.BadRequest("userId must be a positive number")
		}
		id := uint(n)
		param = &id
	}

	tokenID, ok := TokenUserID(c)
	if !ok {
		return param, nil
	}
	if param != nil && *param != tokenID {
		return nil, apperrors.Forbidden("userId does not match the authenticated user")
	}
	return &tokenID, nil
}

// SelfOrAdmin - Restricts a /:id user route to that user or an admin when
// enforce is true.
//
// How it works:
// 1. Reads the user ID stored by Identity
// 2. Passes when it equals the :id path parameter
// 3. Otherwise loads the caller and checks for the ADMIN role
func SelfOrAdmin(users repository.UserRepository, enforce bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enforce {
			c.Next()
			return
		}

		callerID, ok := TokenUserID(c)
		if !ok {
			AbortWithError(c, apperrors.Unauthorized("missing or invalid token"))
			return
		}
		if c.Param("id") == strconv.FormatUint(uint64(callerID), 10) {
			c.Next()
			return
		}

		caller, err := users.FindByID(c.Request.Context(), callerID)
		if err != nil {
			AbortWithError(c, apperrors.Unauthorized("user not found"))
			return
		}
		if !caller.HasRole(models.RoleAdmin) {
			AbortWithError(c, apperrors.Forbidden("admin access required"))
			return
		}
		c.Next()
	}
}
