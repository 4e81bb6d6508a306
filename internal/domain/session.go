package domain

import (
	"encoding/base64"
	"strings"
)

// Session is the authenticated context required to call the remote site.
// A session is either fully populated or absent; partial sessions are never
// persisted or handed to callers.
type Session struct {
	SiteURL   string
	ActorID   int
	ActorName string
	Token     string
}

func (s Session) Complete() bool {
	return strings.TrimSpace(s.SiteURL) != "" &&
		s.ActorID > 0 &&
		strings.TrimSpace(s.ActorName) != "" &&
		strings.TrimSpace(s.Token) != ""
}

func (s Session) Actor() Actor {
	return Actor{ID: s.ActorID, Name: s.ActorName}
}

// Actor is the read-only identity slice of a session exposed to the
// presentation layer.
type Actor struct {
	ID   int
	Name string
}

// BasicToken builds the credential replayed as a Basic authorization header
// on every request. The remote site authenticates each request with an
// application password rather than a session cookie, so the token must
// decode back to username:password.
func BasicToken(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
