package identity

type Kind string

const (
	KindAnonymous     Kind = "anonymous"
	KindAuthenticated Kind = "authenticated"
)

// Identity is the key under which a shopper's cart is addressed remotely:
// either an anonymous session token or an auth token issued by the external
// identity provider. An authenticated identity retains the session token of
// the anonymous session that preceded it, so that a cart built before login
// remains addressable until it has been merged.
type Identity struct {
	Kind         Kind
	SessionToken string
	AuthToken    string
}

func (i Identity) IsAuthenticated() bool {
	return i.Kind == KindAuthenticated
}

// Key returns a stable key for caches and serialization, the auth token wins.
func (i Identity) Key() string {
	if i.IsAuthenticated() {
		return "auth-" + i.AuthToken
	}

	return "session-" + i.SessionToken
}

// AnonymousPredecessor returns the anonymous identity this shopper had before
// logging in, used to address the not-yet-merged anonymous cart.
func (i Identity) AnonymousPredecessor() (Identity, bool) {
	if !i.IsAuthenticated() || i.SessionToken == "" {
		return Identity{}, false
	}

	return Identity{
		Kind:         KindAnonymous,
		SessionToken: i.SessionToken,
	}, true
}
