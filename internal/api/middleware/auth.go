package middleware

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

// HeaderUserID заголовок с идентификатором пользователя, проставляемый фронтендом
const HeaderUserID = "X-User-ID"

const (
	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный X-User-ID"
	msgProviderOnly  = "действие доступно только мастеру"
)

// Auth извлекает пользователя из X-User-ID и кладет его в контекст
// Пользователь с providerID считается провайдером.
func Auth(providerID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			if raw == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			actor := domain.Actor{UserID: userID, IsProvider: userID == providerID}
			next.ServeHTTP(w, r.WithContext(handlers.WithActor(r.Context(), actor)))
		})
	}
}

// ProviderOnly пропускает только провайдера; должен стоять после Auth
func ProviderOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := handlers.ActorFromContext(r.Context())
		if !ok || !actor.IsProvider {
			handlers.RespondForbidden(w, msgProviderOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
