package session

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/spms/core"
)

// ErrMissingCredentials is returned when the email or the password is empty.
var ErrMissingCredentials = errors.New("Please fill in all fields")

// Profile identifies the logged-in operator.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the per-request authentication state. The zero value is anonymous.
type Session struct {
	Authenticated bool
	Profile       Profile
}

type LoginRequest struct {
	Email    string `schema:"email" validate:"required"`
	Password string `schema:"password" validate:"required"`
}

// Login opens a session for any non-empty pair of credentials. The email is trimmed.
func Login(req LoginRequest) (Session, error) {
	req.Email = core.CleanString(req.Email)
	if req.Email == "" || req.Password == "" {
		return Session{}, ErrMissingCredentials
	}
	return Session{Authenticated: true, Profile: NewProfile(req.Email)}, nil
}

// NewProfile names the operator after the local part of their email.
func NewProfile(email string) Profile {
	name := email
	if i := strings.Index(email, "@"); i >= 0 {
		name = email[:i]
	}
	return Profile{Name: name, Email: email}
}

// Initial is the first letter of the profile name, upper-cased, for avatars ("U" when unnamed).
func (p Profile) Initial() string {
	for _, r := range p.Name {
		return strings.ToUpper(string(r))
	}
	return "U"
}
