package auth

import "context"

type contextKey string

const (
	sessionKey contextKey = "auth.session"
	apiUserKey contextKey = "auth.api_user"
)

// Session is the authenticated dashboard caller attached to a request.
type Session struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// WithSession attaches a dashboard session to the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFrom returns the dashboard session, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// WithAPIUser attaches the API-key-resolved user to the context.
func WithAPIUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, apiUserKey, u)
}

// APIUserFrom returns the API-key-resolved user, if any.
func APIUserFrom(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(apiUserKey).(*User)
	return u, ok
}
