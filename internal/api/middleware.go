package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rappy1999/workhours/internal/api/respond"
	"github.com/rappy1999/workhours/internal/auth"
)

// RequireActor resolves the caller through the authorizer and rejects
// requests whose actor does not match the {userId} path scope. The services
// behind it still re-check ownership on every mutation; this middleware is
// the outer gate, not the only one.
func RequireActor(authorizer auth.Authorizer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractToken(r)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			actor, err := authorizer.Authorize(r.Context(), token)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			if userID := mux.Vars(r)["userId"]; userID != "" && userID != actor.ActorID {
				respond.WriteForbidden(w, "not authorized for this user")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
