package api

import (
	"net/http"
	"time"
)

// timeoutBody is written when a handler does not finish in time
const timeoutBody = `{"response": "request timeout, the request took too long to process"}`

// TimeoutMiddleware bounds every request to timeout. The request context is cancelled
// at the deadline so in-flight store calls abort, and the client gets a 503.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
