package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.POST("/api/schedule", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestPreflightShortCircuits(t *testing.T) {
	r := newRouter(nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/schedule", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestWildcardWithoutOrigin(t *testing.T) {
	r := newRouter(nil)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/schedule", nil)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRejectsUnknownOrigin(t *testing.T) {
	r := newRouter([]string{"https://timetable.example/"})

	allowed := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/schedule", nil)
	req.Header.Set("Origin", "https://timetable.example")
	r.ServeHTTP(allowed, req)
	assert.Equal(t, "https://timetable.example", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/schedule", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(denied, req)
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}
