package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// rolePrefix is prepended to every role claim when it is mapped to an
// authority tag, mirroring the convention of the token issuer.
const rolePrefix = "ROLE_"

// TokenClaims is the claim set carried by every bearer token accepted by the
// service: the standard registered claims plus a "roles" claim holding the
// caller's role tags.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Roles is the set of role tags granted to the token subject.
	Roles []Role `json:"roles"`
}

// Token wraps a verified JWT together with the identity extracted from it.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string form
	// is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Username is the subject claim: the identity the token was issued for.
	Username string `json:"-"`

	// Roles is the parsed "roles" claim.
	Roles []Role `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Principal is the authenticated caller as seen by authorization predicates:
// an identity plus the authority tags derived from the token's role claims.
type Principal struct {
	// Username is the caller's identity (the token subject).
	Username string

	// Authorities holds the prefixed authority tags, e.g. "ROLE_ADMIN".
	Authorities []string
}

// NewPrincipal builds a [Principal] from a verified token, mapping each role
// claim to an authority tag by prefixing.
func NewPrincipal(username string, roles []Role) Principal {
	authorities := make([]string, 0, len(roles))
	for _, role := range roles {
		authorities = append(authorities, rolePrefix+string(role))
	}

	return Principal{
		Username:    username,
		Authorities: authorities,
	}
}

// HasAuthority reports whether the principal carries the given authority tag.
func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal carries the admin authority.
func (p Principal) IsAdmin() bool {
	return p.HasAuthority(rolePrefix + string(RoleAdmin))
}

// Is reports whether the principal's identity equals the given username.
// Used by ownership checks ("admin or self").
func (p Principal) Is(username string) bool {
	return p.Username != "" && p.Username == username
}
