package identity

import (
	"net/http"
	"strings"

	"github.com/SanakShres/emergent-ecommerce/lib/myuuid"
)

// SessionCookieName carries the anonymous session token across reloads.
const SessionCookieName = "shopper_session"

// Resolver derives the current shopping identity. It performs no network calls:
// tokens come in from the request, and persistence of a freshly minted session
// token is left to the web boundary (a cookie written by the caller).
type Resolver struct {
	uuider myuuid.UUIDer
}

func NewResolver(uuider myuuid.UUIDer) *Resolver {
	return &Resolver{
		uuider: uuider,
	}
}

// Resolve determines the identity for the given tokens. The second return
// value reports that a new session token was minted and must be persisted by
// the caller. An auth token supersedes the session token but does not discard
// it: items added before login stay addressable until the merge runs.
func (r *Resolver) Resolve(authToken string, sessionToken string) (Identity, bool) {
	if authToken != "" {
		return Identity{
			Kind:         KindAuthenticated,
			AuthToken:    authToken,
			SessionToken: sessionToken,
		}, false
	}

	minted := false
	if sessionToken == "" {
		sessionToken = r.uuider.Create()
		minted = true
	}

	return Identity{
		Kind:         KindAnonymous,
		SessionToken: sessionToken,
	}, minted
}

// ResolveFromRequest resolves the identity from the bearer header and session
// cookie of an incoming request and persists a minted token on the response.
func (r *Resolver) ResolveFromRequest(w http.ResponseWriter, req *http.Request) Identity {
	sessionToken := ""
	if cookie, err := req.Cookie(SessionCookieName); err == nil {
		sessionToken = cookie.Value
	}

	identity, minted := r.Resolve(bearerToken(req), sessionToken)
	if minted {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    identity.SessionToken,
			Path:     "/",
			HttpOnly: true,
		})
	}

	return identity
}

func bearerToken(req *http.Request) string {
	authHeader := req.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}
