package subscription

import "context"

type userIDCtxKey struct{}

// SetUserIDToContext attaches the authenticated user's ID to the context.
// The auth provider boundary: everything in this package identifies users
// by this opaque, stable ID.
func SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

// GetUserIDFromContext retrieves the authenticated user's ID, if present.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(string)
	return userID, ok && userID != ""
}

// CurrentUserID returns the authenticated user's ID or ErrNoUser. An absent
// user uniformly means "no access".
func CurrentUserID(ctx context.Context) (string, error) {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return "", ErrNoUser
	}
	return userID, nil
}
