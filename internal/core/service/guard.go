package service

import (
	"strings"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

// SignInRoute is where anonymous navigation is sent.
const SignInRoute = "login"

// DefaultPublicRoutes never require a session.
var DefaultPublicRoutes = []string{"login", "logout", "version", "config", "help", "shell"}

// UserSource reports the signed-in user.
type UserSource interface {
	CurrentUser() (domain.User, bool)
}

// Decision is the result of a guard check. When not allowed, Redirect names
// the sign-in route and From the route that was requested.
type Decision struct {
	Allowed  bool
	Redirect string
	From     string
}

// RouteGuard gates protected routes on a live session. It keeps no state:
// every check reads the session afresh.
type RouteGuard struct {
	users  UserSource
	public map[string]bool
}

// NewRouteGuard creates a guard. With no public routes given,
// DefaultPublicRoutes is used.
func NewRouteGuard(users UserSource, public ...string) *RouteGuard {
	if len(public) == 0 {
		public = DefaultPublicRoutes
	}
	g := &RouteGuard{users: users, public: make(map[string]bool, len(public))}
	for _, r := range public {
		g.public[r] = true
	}
	return g
}

// CanEnter decides whether route may be entered. Routes are command paths
// such as "contract list"; the first word decides whether it is public.
func (g *RouteGuard) CanEnter(route string) Decision {
	route = strings.TrimSpace(route)
	head, _, _ := strings.Cut(route, " ")
	if route == "" || g.public[head] {
		return Decision{Allowed: true}
	}
	if _, ok := g.users.CurrentUser(); ok {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: SignInRoute, From: route}
}
