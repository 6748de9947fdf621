package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

// Envelope wraps auxiliary payloads such as statistics and run listings.
type Envelope struct {
	Data interface{}            `json:"data,omitempty"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// Failure is the body of every error response.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// JSON writes the payload as-is.
func JSON(c *gin.Context, status int, payload interface{}) {
	noStore(c)
	c.JSON(status, payload)
}

// Wrapped writes data inside an Envelope with optional metadata.
func Wrapped(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	JSON(c, status, envelope)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	JSON(c, appErr.Status, Failure{Success: false, Error: appErr.Message, Code: appErr.Code})
}

// NotFound answers requests for unknown routes.
func NotFound(c *gin.Context) {
	JSON(c, http.StatusNotFound, Failure{
		Success: false,
		Error:   fmt.Sprintf("Endpoint not found: %s", c.Request.URL.Path),
		Code:    appErrors.ErrNotFound.Code,
	})
}

// Attachment streams a generated file.
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	noStore(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
