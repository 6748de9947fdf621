package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

func newContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, path, nil)
	return c, w
}

func TestErrorUsesAppStatus(t *testing.T) {
	c, w := newContext("/api/schedule")

	Error(c, appErrors.Clone(appErrors.ErrEmptyBody, ""))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body Failure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Empty request body", body.Error)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestErrorHidesUnknownCause(t *testing.T) {
	c, w := newContext("/api/schedule")

	Error(c, fmt.Errorf("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestNotFound(t *testing.T) {
	c, w := newContext("/api/nope")

	NotFound(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Endpoint not found: /api/nope","code":"NOT_FOUND"}`, w.Body.String())
}

func TestAttachment(t *testing.T) {
	c, w := newContext("/api/schedule/export")

	Attachment(c, "timetable.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="timetable.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
