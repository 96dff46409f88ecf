package domain

import (
	"context"
	"slices"
)

// Identity is the caller as asserted by a verified token. It is trusted as of
// issuance time; the account is not re-read on each request.
type Identity struct {
	SubjectID string `json:"id"`
	Role      Role   `json:"role"`
	Email     string `json:"email"`
}

// AuthorizeRole passes when the identity's role is one of allowed.
func AuthorizeRole(id Identity, allowed ...Role) error {
	if slices.Contains(allowed, id.Role) {
		return nil
	}
	return ErrForbidden
}

// AuthorizeOwnerOrRole passes when the identity owns the resource or holds one
// of the allowed roles.
func AuthorizeOwnerOrRole(id Identity, ownerID string, allowed ...Role) error {
	if id.SubjectID != "" && id.SubjectID == ownerID {
		return nil
	}
	return AuthorizeRole(id, allowed...)
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
