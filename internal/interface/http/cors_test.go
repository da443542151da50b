package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestOriginPolicy(t *testing.T) {
	listed := newOriginPolicy([]string{"https://climate.example.com/", " http://localhost:3000 "})
	require.Equal(t, "https://climate.example.com", listed.allowOrigin("https://climate.example.com"))
	require.Equal(t, "http://LOCALHOST:3000", listed.allowOrigin("http://LOCALHOST:3000"))
	require.Empty(t, listed.allowOrigin("https://evil.example.net"))
	require.Empty(t, listed.allowOrigin(""))

	require.Equal(t, "*", newOriginPolicy(nil).allowOrigin("https://anything.test"))
	require.Equal(t, "*", newOriginPolicy([]string{"", "*"}).allowOrigin(""))
}

func TestCORSMiddlewareRefusesUnlistedOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(corsMiddleware([]string{"https://climate.example.com"}))
	engine.GET("/api/zones", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/zones", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", rec.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodOptions, "/api/zones", nil)
	req.Header.Set("Origin", "https://climate.example.com")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://climate.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, corsAllowHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
	require.Equal(t, corsExposeHeaders, rec.Header().Get("Access-Control-Expose-Headers"))
}
