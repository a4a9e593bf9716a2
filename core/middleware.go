package core

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityContextKey = "identity"

// SessionMiddleware resolves the session identity once per request and
// exposes it to later handlers through the gin context.
func SessionMiddleware(authority *SessionAuthority) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := authority.Current(c.Request); ok {
			c.Set(identityContextKey, id)
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	id, ok := v.(Identity)
	if !ok {
		return nil
	}
	return &id
}

// OriginRefererMiddleware validates Origin/Referer on state-changing requests.
// Same-host origins always pass; other origins must be listed in cfg.AllowedOrigins.
func OriginRefererMiddleware(cfg Config) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(o)] = struct{}{}
	}

	isAllowed := func(origin, host string) bool {
		if origin == "" {
			// Same-origin navigation (no Origin header) is allowed.
			return true
		}
		if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, host) {
			return true
		}
		_, ok := allowed[strings.ToLower(origin)]
		return ok
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		referer := c.GetHeader("Referer")
		if origin == "" && referer != "" {
			if u, err := url.Parse(referer); err == nil {
				origin = u.Scheme + "://" + u.Host
			}
		}

		if c.Request.Method == http.MethodOptions && origin != "" {
			if !isAllowed(origin, c.Request.Host) {
				respondError(c, http.StatusForbidden, msgForbidden)
				c.Abort()
				return
			}
			setCORSHeaders(c, origin)
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if !isAllowed(origin, c.Request.Host) {
			respondError(c, http.StatusForbidden, msgForbidden)
			c.Abort()
			return
		}
		if origin != "" {
			setCORSHeaders(c, origin)
		}
		c.Next()
	}
}

func setCORSHeaders(c *gin.Context, origin string) {
	c.Header("Access-Control-Allow-Origin", origin)
	c.Header("Vary", "Origin")
	c.Header("Access-Control-Allow-Credentials", "true")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
