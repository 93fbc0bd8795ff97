// internal/domain/cart/context.go
package cart

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the session's cart store
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the cart store carried by ctx
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(contextKey{}).(*Store)
	return s, ok && s != nil
}

// MustFromContext returns the cart store carried by ctx and panics when the
// caller runs outside an initialized session.
func MustFromContext(ctx context.Context) *Store {
	s, ok := FromContext(ctx)
	if !ok {
		panic("cart: store accessed outside an initialized session")
	}
	return s
}
