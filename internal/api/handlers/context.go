package handlers

import (
	"context"

	"github.com/m04kA/SMC-SlotBooking/internal/domain"
)

type contextKey string

const (
	actorKey     contextKey = "actor"
	requestIDKey contextKey = "request_id"
)

// WithActor сохраняет текущего пользователя в контексте
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext возвращает текущего пользователя
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// WithRequestID сохраняет идентификатор запроса в контексте
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext возвращает идентификатор запроса
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// CanAccessUser проверяет, что текущий пользователь - это userID или провайдер
func CanAccessUser(ctx context.Context, userID int64) bool {
	actor, ok := ActorFromContext(ctx)
	return ok && (actor.IsProvider || actor.UserID == userID)
}
