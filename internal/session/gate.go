package session

import (
	"errors"

	"github.com/shoecream/shoecare-api/internal/domain"
)

type State string

const (
	// Anonymous is the resting state: no identity established.
	Anonymous State = "anonymous"
	// GuestFlow is entered by explicit user choice to submit a single
	// request without signing up. It is scoped to one request-flow
	// invocation and falls back to Anonymous whenever the flow is closed
	// or reopened for a different action.
	GuestFlow State = "guest_flow"
	// Authenticated holds a member identity established by login or
	// registration.
	Authenticated State = "authenticated"
)

var ErrAlreadyAuthenticated = errors.New("already authenticated")

// Gate resolves the current user and decides which request-intake path is
// available. One gate serves one client flow; over HTTP a gate is rebuilt
// per request from the bearer token.
type Gate struct {
	state  State
	member *domain.Member
}

func NewGate() *Gate {
	return &Gate{state: Anonymous}
}

func (g *Gate) State() State {
	return g.state
}

// Member returns the authenticated member, if any.
func (g *Gate) Member() (*domain.Member, bool) {
	if g.state != Authenticated {
		return nil, false
	}
	return g.member, true
}

// Authenticate moves the gate to Authenticated. Both login and successful
// registration land here.
func (g *Gate) Authenticate(m *domain.Member) {
	g.state = Authenticated
	g.member = m
}

// EnterGuestFlow switches an anonymous user into the single-submission
// guest path. An authenticated member has no use for it.
func (g *Gate) EnterGuestFlow() error {
	if g.state == Authenticated {
		return ErrAlreadyAuthenticated
	}
	g.state = GuestFlow
	return nil
}

// ResetFlow ends a guest flow when the intake modal is closed or reopened
// for a different action, so stale guest-mode state never leaks into an
// unrelated subsequent action. An authenticated session is untouched.
func (g *Gate) ResetFlow() {
	if g.state == GuestFlow {
		g.state = Anonymous
	}
}

// Logout drops any identity and returns to Anonymous.
func (g *Gate) Logout() {
	g.state = Anonymous
	g.member = nil
}
