package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"beacon/internal/httputil"
)

// Recovery turns a handler panic into a 500 problem response. The
// request id goes into both the log entry and the response body so a
// client report can be matched to the stack trace.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := httputil.GetRequestID(r)
				logger.With(
					slog.String("request_id", requestID),
					slog.String("method", r.Method),
					slog.String("route", r.Pattern),
				).Error("handler panicked",
					"panic", fmt.Sprint(rec),
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				var extras map[string]interface{}
				if requestID != "" {
					extras = map[string]interface{}{"request_id": requestID}
				}
				httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, "internal server error", extras)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
