package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/arthurarakelov/burlington-ballers/models"
	"github.com/arthurarakelov/burlington-ballers/services"
)

type contextKey string

const authUserKey contextKey = "authUser"

// Authenticator verifies Firebase ID tokens and attaches the resolved
// user to the request context. Every authenticated request also upserts
// the caller's profile so directory data stays current.
type Authenticator struct {
	Auth  *auth.Client
	Users *services.UserProfileService
}

func NewAuthenticator(ctx context.Context, credentialsFile string, users *services.UserProfileService) (*Authenticator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &Authenticator{Auth: client, Users: users}, nil
}

// Middleware rejects requests without a valid Bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, `{"error": "missing authorization token"}`, http.StatusUnauthorized)
			return
		}

		token, err := a.Auth.VerifyIDToken(r.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Printf("❌ Token verification failed: %v", err)
			http.Error(w, `{"error": "invalid authorization token"}`, http.StatusUnauthorized)
			return
		}

		user := models.AuthUser{UID: token.UID}
		if name, ok := token.Claims["name"].(string); ok {
			user.Name = name
		}
		if email, ok := token.Claims["email"].(string); ok {
			user.Email = email
		}
		if photo, ok := token.Claims["picture"].(string); ok {
			user.Photo = photo
		}

		profile, err := a.Users.EnsureProfile(r.Context(), user)
		if err != nil {
			log.Printf("❌ Failed to ensure profile for %s: %v", user.UID, err)
			http.Error(w, `{"error": "service temporarily unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		user.Name = profile.DisplayName()

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authUserKey, user)))
	})
}

// AuthUserFrom extracts the authenticated user placed by Middleware.
func AuthUserFrom(r *http.Request) (models.AuthUser, bool) {
	user, ok := r.Context().Value(authUserKey).(models.AuthUser)
	return user, ok
}
