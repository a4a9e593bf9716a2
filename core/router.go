package core

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, authority *SessionAuthority, authService AuthService) *gin.Engine {
	r := gin.Default()

	// Global middleware: origin check -> session identity
	r.Use(OriginRefererMiddleware(cfg))
	r.Use(SessionMiddleware(authority))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET(loginPath, func(c *gin.Context) {
		c.Data(http.StatusOK, htmlContentType, []byte(loginPageHTML))
	})

	r.POST("/login", func(c *gin.Context) {
		attempt := LoginAttempt{
			Username: c.PostForm("username"),
			Password: c.PostForm("password"),
			Role:     c.PostForm("role"),
		}

		user, err := authService.Authenticate(c.Request.Context(), attempt)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidFormat):
			respondError(c, http.StatusBadRequest, msgInvalidFormat)
			return
		case errors.Is(err, ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
			return
		default:
			log.Printf("Error during login: %v", err)
			respondError(c, http.StatusInternalServerError, msgInternalServerError)
			return
		}

		if err := authority.Establish(c.Writer, c.Request, user); err != nil {
			log.Printf("Error saving session for %s: %v", user.Username, err)
			respondError(c, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		c.Redirect(http.StatusFound, dashboardFor(attempt.Role))
	})

	r.POST("/logout", func(c *gin.Context) {
		if err := authority.Clear(c.Writer, c.Request); err != nil {
			log.Printf("Error clearing session: %v", err)
			respondError(c, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		c.Redirect(http.StatusFound, loginPath)
	})

	r.GET(userDashboardPath, RequireRole(RoleUser), func(c *gin.Context) {
		c.Data(http.StatusOK, htmlContentType, []byte(userDashboardHTML))
	})

	r.GET(adminDashboardPath, RequireRole(RoleAdmin), func(c *gin.Context) {
		c.Data(http.StatusOK, htmlContentType, []byte(adminDashboardHTML))
	})

	return r
}
