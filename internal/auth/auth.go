package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/taskflow-api/internal/model"
	"github.com/BuzzLyutic/taskflow-api/pkg/respond"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// Headers set by the gateway after it has verified the bearer token.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type actorKey struct{}

func WithActor(ctx context.Context, a model.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFrom(ctx context.Context) (model.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(model.Actor)
	return a, ok
}

// Authenticator resolves the caller of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (model.Actor, error)
}

// GatewayHeaders trusts the identity headers injected by the upstream gateway.
type GatewayHeaders struct{}

func (GatewayHeaders) Authenticate(r *http.Request) (model.Actor, error) {
	id := r.Header.Get(HeaderUserID)
	if _, err := uuid.Parse(id); err != nil {
		return model.Actor{}, ErrUnauthenticated
	}
	role := model.Role(r.Header.Get(HeaderUserRole))
	if !role.Valid() {
		return model.Actor{}, ErrUnauthenticated
	}
	return model.Actor{ID: id, Role: role}, nil
}

// Middleware attaches the authenticated actor to the request context.
func Middleware(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, err := authn.Authenticate(r)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "unauthenticated")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
