// Package identity holds the verified caller identity shared by every context.
// The transport verifies a token once and passes the Claim explicitly into
// each handler, which maps it onto its own Actor.
package identity

import "strings"

// Claim is the verified identity decoded from a session token.
// The zero value is the anonymous caller.
type Claim struct {
	UserID     string
	IsAdmin    bool
	IsBusiness bool
}

func (c Claim) Authenticated() bool {
	return strings.TrimSpace(c.UserID) != ""
}
