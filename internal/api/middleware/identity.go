package middleware

import (
	"context"
	"net/http"

	"github.com/majnugame/majnu-go/internal/api/apierr"
	"github.com/majnugame/majnu-go/internal/model"
	"github.com/majnugame/majnu-go/internal/services/user"
)

// CookieName carries the anonymous user ID between requests
const CookieName = "majnu-user-id"

// cookieMaxAge keeps the identity for 30 days, refreshed on every request
const cookieMaxAge = 30 * 24 * 60 * 60

type contextKey string

const userContextKey contextKey = "user"

// Identity resolves the caller's anonymous identity from the ID cookie,
// minting a new user (and cookie) when none is presented. Every request
// downstream of this middleware has a user in context.
func Identity(users *user.Service, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id model.UserID
			if cookie, err := r.Cookie(CookieName); err == nil {
				id = model.UserID(cookie.Value)
			}

			u, created, err := users.GetOrCreate(r.Context(), id)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			if created || id != u.ID {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    string(u.ID),
					Path:     "/",
					MaxAge:   cookieMaxAge,
					HttpOnly: true,
					Secure:   secureCookies,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), userContextKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the resolved user from the request context
func GetUser(ctx context.Context) *model.User {
	u, _ := ctx.Value(userContextKey).(*model.User)
	return u
}

// MustGetUser returns the resolved user or panics
func MustGetUser(ctx context.Context) *model.User {
	u := GetUser(ctx)
	if u == nil {
		panic("no user in context - identity middleware not applied?")
	}
	return u
}
