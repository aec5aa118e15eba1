package domain

import (
	"encoding/json"
	"net/mail"
	"strings"
)

// User is the profile returned by the sign-in exchange.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IsZero reports whether the user carries no identity.
func (u User) IsZero() bool {
	return u.Name == "" && u.Email == ""
}

// Session is the in-memory record of who is signed in.
//
// A Session is either complete (token and user both set) or empty; a value
// with only one half set is never valid at rest.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// IsLive reports whether the session is complete.
func (s Session) IsLive() bool {
	return s.Token != "" && !s.User.IsZero()
}

// State is the authentication state machine: Anonymous or Authenticated.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticated
)

// String returns the lowercase state name.
func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Credentials is the sign-in input. It is never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the credentials before any network call.
func (c Credentials) Validate() error {
	v := NewValidator()
	v.Required("email", c.Email)
	if strings.TrimSpace(c.Email) != "" {
		v.Email("email", c.Email)
	}
	v.Required("password", c.Password)
	return v.Err()
}

// EncodeUser serializes a user profile for the token store.
func EncodeUser(u User) ([]byte, error) {
	return json.Marshal(u)
}

// DecodeUser parses a stored user profile. An empty profile is an error.
func DecodeUser(data []byte) (User, error) {
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return User{}, err
	}
	if u.IsZero() {
		return User{}, ErrNotFound.WithDetails("empty user profile")
	}
	return u, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
