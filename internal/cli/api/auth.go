package api

import (
	"context"
	"net/http"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

// Auth exchanges credentials for a session. It does not apply the
// recovery policy: a 401 here means wrong credentials, not an expired
// session.
type Auth struct {
	http Doer
}

// NewAuth creates the authenticator.
func NewAuth(http Doer) *Auth {
	return &Auth{http: http}
}

type sessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Authenticate calls POST /api/v1/sessions.
func (a *Auth) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	var resp sessionResponse
	o := a.http.Do(ctx, requestOf(http.MethodPost, "/api/v1/sessions", sessionRequest{
		Email:    creds.Email,
		Password: creds.Password,
	}), &resp)

	switch {
	case o.Kind == domain.OutcomeOK:
		return domain.Session{Token: resp.Token, User: resp.User}, nil
	case refusesCredentials(o.Status):
		return domain.Session{}, domain.ErrInvalidCredentials.WithDetails(o.Reason)
	default:
		return domain.Session{}, o.AsError()
	}
}

// refusesCredentials reports whether a sign-in status means the backend
// refused the credentials themselves, as opposed to failing.
func refusesCredentials(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
		return true
	}
	return false
}
