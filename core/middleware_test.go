package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newOriginTestEngine(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(OriginRefererMiddleware(cfg))
	r.POST("/login", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestOriginRefererMiddleware(t *testing.T) {
	r := newOriginTestEngine(Config{AllowedOrigins: []string{"https://Partner.example"}})

	cases := []struct {
		name    string
		method  string
		origin  string
		referer string
		want    int
	}{
		{"no origin", http.MethodPost, "", "", http.StatusOK},
		{"same host origin", http.MethodPost, "http://example.com", "", http.StatusOK},
		{"same host referer", http.MethodPost, "", "http://example.com/", http.StatusOK},
		{"foreign origin", http.MethodPost, "http://evil.example", "", http.StatusForbidden},
		{"foreign referer", http.MethodPost, "", "http://evil.example/login", http.StatusForbidden},
		{"allowed origin", http.MethodPost, "https://partner.example", "", http.StatusOK},
		{"foreign origin on GET", http.MethodGet, "http://evil.example", "", http.StatusOK},
		{"preflight allowed", http.MethodOptions, "https://partner.example", "", http.StatusNoContent},
		{"preflight foreign", http.MethodOptions, "http://evil.example", "", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := "/login"
			if tc.method == http.MethodGet {
				path = "/"
			}
			req := httptest.NewRequest(tc.method, path, nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestOriginRefererMiddlewareCORSHeaders(t *testing.T) {
	r := newOriginTestEngine(Config{AllowedOrigins: []string{"https://partner.example"}})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("Origin", "https://partner.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://partner.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
