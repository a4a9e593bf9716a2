package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Permit
)

// Authorize permits only an authenticated identity whose role equals required.
// Roles are not ordered: admin does not satisfy a user requirement.
func Authorize(id *Identity, required Role) Decision {
	if id == nil || id.Username == "" {
		return Deny
	}
	if id.Role != required {
		return Deny
	}
	return Permit
}

// RequireRole gates a route on the session role. A denied request is
// redirected to the login page whether it was unauthenticated or merely held
// the wrong role, so the two cases look the same to the client.
func RequireRole(required Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Authorize(identityFrom(c), required) != Permit {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
