package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/samadhan-cg/samadhan-api/pkg/errors"
)

// Body is the `{success, data}` contract used by the stats and admin
// endpoints. Extra keys (message, total, portal, source) ride along in Extra.
type Body struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Extra   map[string]interface{} `json:"-"`
}

// OK sends a `{success:true, data}` payload.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, Body{Success: true, Data: data})
}

// Message sends a `{success:true, message}` payload.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, Body{Success: true, Message: message})
}

// JSON flattens the body, merging Extra keys into the envelope.
func JSON(c *gin.Context, status int, body Body) {
	payload := gin.H{"success": body.Success}
	if body.Message != "" {
		payload["message"] = body.Message
	}
	if body.Data != nil {
		payload["data"] = body.Data
	}
	for k, v := range body.Extra {
		payload[k] = v
	}
	c.JSON(status, payload)
}

// Error converts any error to the `{success:false, message}` shape with the
// status carried by the typed error.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"success": false, "message": appErr.Message})
}

// PlainError serves the `{error}` shape used by the bare-array endpoints.
func PlainError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
