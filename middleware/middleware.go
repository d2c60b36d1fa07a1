package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// TokenCookie carries the admin session token.
const TokenCookie = "safeplate-token"

type contextKey string

const adminKey contextKey = "admin"

// Claims is the admin token payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Auth validates admin tokens. Constructed once from config, immutable.
type Auth struct {
	Secret        []byte
	AdminUsername string
}

func (a *Auth) tokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[len("Bearer "):]
	}
	return ""
}

func (a *Auth) isAdmin(r *http.Request) bool {
	tokenString := a.tokenFrom(r)
	if tokenString == "" {
		return false
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	return claims.Username == a.AdminUsername
}

// Require rejects the request outright when no valid admin token is
// presented. The response never reveals whether the target resource exists.
func (a *Auth) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !a.isAdmin(r) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r, ps)
	}
}

// Flag lets the request through either way and records admin status in the
// context for handlers that change behavior by privilege.
func (a *Auth) Flag(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), adminKey, a.isAdmin(r))
		next(w, r.WithContext(ctx), ps)
	}
}

// IsAdmin reports the admin flag set by Flag.
func IsAdmin(ctx context.Context) bool {
	admin, _ := ctx.Value(adminKey).(bool)
	return admin
}
