package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"erp-admin/internal/app"
	"erp-admin/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

const authCookie = "auth_token"

type authClaimsKey struct{}

// AuthClaims holds the authenticated user's identity extracted from the JWT.
type AuthClaims struct {
	UserID   int
	Username string
	Role     string
}

// Actor returns the request identity.
func (c *AuthClaims) Actor() core.Actor {
	if c == nil {
		return core.Actor{}
	}
	return core.Actor{UserID: c.UserID, Username: c.Username, Role: c.Role}
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// actorFromContext returns the signed-in actor, or the anonymous zero Actor.
func actorFromContext(ctx context.Context) core.Actor {
	return authFromContext(ctx).Actor()
}

// sessionAudience marks session cookies so tokens minted for other purposes
// with the same secret are rejected.
const sessionAudience = "erp-session"

// jwtClaims is the JWT payload struct used for signing and parsing.
type jwtClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// claimsFromRequest validates the auth_token cookie.
func (h *Handler) claimsFromRequest(r *http.Request) (*AuthClaims, error) {
	cookie, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(h.jwtSecret), nil
	}, jwt.WithAudience(sessionAudience))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return &AuthClaims{UserID: claims.UserID, Username: claims.Username, Role: claims.Role}, nil
}

// RequireAuth is chi middleware that validates the auth_token cookie and injects
// AuthClaims into the request context. Returns 401 if the token is absent or invalid.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.claimsFromRequest(r)
		if err != nil {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), authClaimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthBrowser is middleware for HTML page routes. Unlike RequireAuth (which returns 401 JSON),
// this middleware redirects unauthenticated requests to /login with a 303.
func (h *Handler) RequireAuthBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.claimsFromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), authClaimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// issueSession signs a one-hour session token and sets it as the auth cookie.
func (h *Handler) issueSession(w http.ResponseWriter, session *app.UserSession) error {
	now := time.Now()
	claims := &jwtClaims{
		UserID:   session.UserID,
		Username: session.Username,
		Role:     session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{sessionAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   3600,
	})
	return nil
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// login handles POST /api/auth/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.svc.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, "invalid username or password", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}
	if err := h.issueSession(w, session); err != nil {
		writeError(w, r, "token generation failed", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, session)
}

// logout handles POST /api/auth/logout and clears the auth cookie.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// me handles GET /api/auth/me and returns the current user's profile with
// their active module and company.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	if claims == nil {
		writeError(w, r, "not authenticated", "UNAUTHORIZED", http.StatusUnauthorized)
		return
	}

	prefs, err := h.svc.Preferences(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, "user not found", "NOT_FOUND", http.StatusNotFound)
		return
	}

	type meResponse struct {
		Username  string `json:"username"`
		Role      string `json:"role"`
		Module    string `json:"module"`
		CompanyID int    `json:"company_id,omitempty"`
	}
	resp := meResponse{Username: claims.Username, Role: claims.Role, Module: prefs.Module.Key}
	if prefs.Company != nil {
		resp.CompanyID = prefs.Company.ID
	}
	writeJSON(w, resp)
}
