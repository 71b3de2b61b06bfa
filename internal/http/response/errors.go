package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
)

// RespondErr maps err onto the error envelope. Errors without an HTTP status
// become 500 with a generic message.
func RespondErr(c *gin.Context, err error) {
	status, code := apierr.StatusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, status, code, nil)
		return
	}
	RespondError(c, status, code, err)
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, err error) {
	RespondErr(c, err)
	c.Abort()
}
