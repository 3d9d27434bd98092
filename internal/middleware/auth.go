package middleware

import (
	"context"
	"net/http"

	"schooladmin/internal/entity"
	"schooladmin/internal/session"
)

type ctxKey int

const identityKey ctxKey = 0

// WithIdentity возвращает запрос с личностью в контексте
func WithIdentity(r *http.Request, ident entity.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, ident))
}

// Identity достает личность текущего пользователя из контекста запроса
func Identity(r *http.Request) (entity.Identity, bool) {
	ident, ok := r.Context().Value(identityKey).(entity.Identity)
	return ident, ok
}

// RequireAuth пускает дальше только с живой сессией, личность кладет
// в контекст запроса
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := session.CurrentIdentity(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, WithIdentity(r, ident))
	})
}

// RequireRole - поверх RequireAuth, роль должна совпасть.
// Чужая роль уводится на свой список с уведомлением.
func RequireRole(role entity.Role, message, redirect string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, _ := Identity(r)
			if ident.Role != role {
				session.Flash(w, r, "danger", message)
				http.Redirect(w, r, redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
