package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/schoolmeal-backend/internal/platform/apierr"
)

func TestRespondErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", apierr.Validation("bad %s", "input"), http.StatusBadRequest, "validation_error", "validation error: bad input"},
		{"duplicate", apierr.Duplicate("Rice"), http.StatusConflict, "duplicate_name", `validation error: duplicate name: "Rice"`},
		{"wrapped sentinel", fmt.Errorf("load: %w", apierr.ErrNotFound), http.StatusNotFound, "not_found", "load: not found"},
		{"internal", errors.New("db exploded"), http.StatusInternalServerError, "internal", "unknown error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			RespondErr(c, tc.err)
			if w.Code != tc.status {
				t.Fatalf("status: want %d got %d", tc.status, w.Code)
			}
			var env ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error.Code != tc.code || env.Error.Message != tc.message {
				t.Fatalf("envelope: %+v", env.Error)
			}
		})
	}
}
