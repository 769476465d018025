package auth

import "context"

type userIDKey struct{}

// WithUserID returns a context carrying the authenticated owner.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the owner stored by WithUserID.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// PrincipalProvider resolves the current owner of a request.
type PrincipalProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// ContextPrincipal reads the owner placed in the context by the transport's
// auth interceptor.
type ContextPrincipal struct{}

func (ContextPrincipal) CurrentUserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}
