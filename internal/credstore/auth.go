package credstore

import "context"

// Auth is a view of the store scoped to the two authentication keys. It
// satisfies the request pipeline's TokenSource interface, keeping the
// pipeline unaware of key names.
type Auth struct {
	Store Store
}

// Token returns the stored bearer token, or ok=false when absent.
func (a Auth) Token(ctx context.Context) (string, bool, error) {
	return a.Store.Get(ctx, KeyAuthToken)
}

// Invalidate removes the token and the cached user profile atomically.
func (a Auth) Invalidate(ctx context.Context) error {
	return a.Store.DeleteMany(ctx, KeyAuthToken, KeyUserProfile)
}
