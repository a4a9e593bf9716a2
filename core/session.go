package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const sessionName = "authgate_session"

const (
	sessionUsernameKey = "username"
	sessionRoleKey     = "role"
)

// SessionAuthority binds verified identities to the client's session and reads
// them back on later requests. The state is Anonymous until Establish succeeds.
type SessionAuthority struct {
	cfg   Config
	store sessions.Store
}

func NewSessionAuthority(cfg Config, store sessions.Store) *SessionAuthority {
	return &SessionAuthority{cfg: cfg, store: store}
}

// Establish replaces whatever the session held with a snapshot of id.
func (a *SessionAuthority) Establish(w http.ResponseWriter, r *http.Request, id Identity) error {
	// A cookie that fails to decode still yields a usable session to overwrite.
	session, err := a.store.Get(r, sessionName)
	if session == nil {
		return err
	}
	session.ID = ""
	session.Values = map[interface{}]interface{}{
		sessionUsernameKey: id.Username,
		sessionRoleKey:     string(id.Role),
	}
	applySessionOptions(a.cfg, session)
	return session.Save(r, w)
}

// Current returns the identity bound to the request's session, if any.
func (a *SessionAuthority) Current(r *http.Request) (Identity, bool) {
	session, err := a.store.Get(r, sessionName)
	if err != nil || session == nil {
		return Identity{}, false
	}
	username, _ := session.Values[sessionUsernameKey].(string)
	roleStr, _ := session.Values[sessionRoleKey].(string)
	if strings.TrimSpace(username) == "" {
		return Identity{}, false
	}
	role, ok := ParseRole(roleStr)
	if !ok {
		return Identity{}, false
	}
	return Identity{Username: username, Role: role}, true
}

// Clear drops the session and expires its cookie.
func (a *SessionAuthority) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := a.store.Get(r, sessionName)
	if session == nil {
		return err
	}
	session.Values = map[interface{}]interface{}{}
	applySessionOptions(a.cfg, session)
	session.Options.MaxAge = -1 // Must be set AFTER applySessionOptions to properly delete cookie
	return session.Save(r, w)
}

// NewSessionStore builds the sessions.Store selected by cfg.SessionBackend.
// The returned func releases any connection it opened.
func NewSessionStore(cfg Config) (sessions.Store, func(), error) {
	switch cfg.SessionBackend {
	case SessionBackendRedis:
		client, err := NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return newRedisSessionStore(cfg, client), func() { _ = client.Close() }, nil
	default:
		store := sessions.NewCookieStore([]byte(cfg.SessionKey))
		store.Options = sessionOptions(cfg)
		return store, func() {}, nil
	}
}

func newRedisSessionStore(cfg Config, client redis.UniversalClient) *RedisStore {
	store := NewRedisStore(client, []byte(cfg.SessionKey))
	store.Options = sessionOptions(cfg)
	return store
}

func sessionOptions(cfg Config) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromString(cfg.CookieSameSite),
	}
}

func applySessionOptions(cfg Config, session *sessions.Session) {
	session.Options = sessionOptions(cfg)
}

func sameSiteFromString(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
