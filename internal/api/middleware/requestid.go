package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

// HeaderRequestID заголовок идентификатора запроса
const HeaderRequestID = "X-Request-ID"

// RequestID проставляет X-Request-ID (переданный клиентом или новый) и логирует запрос
func RequestID(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, id)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(handlers.WithRequestID(r.Context(), id)))

			logger.Info("%s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond), id)
		})
	}
}
