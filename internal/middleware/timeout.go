package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"pagepilot/internal/model"
)

// Timeout caps request handling time. The timeout body is rendered through
// the shared response envelope so clients parse it like any other error.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: "REQUEST_TIMEOUT", Message: "request timed out"},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
