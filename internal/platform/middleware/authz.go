// Copyright (c) 2026 TrendHive. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trendhive/trendhive/internal/platform/constants"
	"github.com/trendhive/trendhive/internal/platform/ctxutil"
	"github.com/trendhive/trendhive/internal/platform/sec"
)

// # Authentication Gate

// TokenVerifier validates a raw session token and extracts the identity claims.
// Implemented by [sec.TokenService].
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// SessionChecker confirms that the identity referenced by a token still maps
// to a live account. Implemented by the auth service.
type SessionChecker interface {
	// CheckActiveUser returns an error if the user no longer exists or
	// has been deactivated.
	CheckActiveUser(ctx context.Context, userID string) error
}

// Authenticator guards routes that require a signed-in user.
type Authenticator struct {
	verifier      TokenVerifier
	sessions      SessionChecker
	secureCookies bool
}

// NewAuthenticator builds the authentication middleware component.
//
// secureCookies should be true in production so the session cookie is only
// sent over HTTPS.
func NewAuthenticator(verifier TokenVerifier, sessions SessionChecker, secureCookies bool) *Authenticator {
	return &Authenticator{
		verifier:      verifier,
		sessions:      sessions,
		secureCookies: secureCookies,
	}
}

// RequireAuth rejects requests that do not carry a valid session token.
//
// The token is read from the session cookie first, then from the
// Authorization bearer header as a fallback for non-browser clients.
// Any failure clears the session cookie so stale browser state does not
// keep producing doomed requests.
func (authenticator *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		// ── 1. Extract the raw token ──
		tokenString := extractToken(request)
		if tokenString == "" {
			authenticator.reject(writer, "Authentication required")
			return
		}

		// ── 2. Verify the signature and expiry ──
		claims, err := authenticator.verifier.VerifyToken(tokenString)
		if err != nil {
			authenticator.reject(writer, "Session is invalid or has expired")
			return
		}

		// ── 3. Confirm the account still exists and is active ──
		if err := authenticator.sessions.CheckActiveUser(request.Context(), claims.UserID); err != nil {
			authenticator.reject(writer, "Session is invalid or has expired")
			return
		}

		// ── 4. Pass the identity downstream ──
		ctx := ctxutil.WithAuthUser(request.Context(), claims)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// reject answers 401 and clears the session cookie.
func (authenticator *Authenticator) reject(writer http.ResponseWriter, message string) {
	ClearSessionCookie(writer, authenticator.secureCookies)
	writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// extractToken pulls the session token from the cookie or the bearer header.
func extractToken(request *http.Request) string {
	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authorization := request.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	return ""
}

// # Session Cookie Management

// SetSessionCookie attaches the signed session token to the response.
func SetSessionCookie(writer http.ResponseWriter, token string, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(constants.SessionTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(writer http.ResponseWriter, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
