package entities

import "strings"

// Actor is the verified caller of a use case. The zero value is anonymous.
type Actor struct {
	UserID     string
	IsAdmin    bool
	IsBusiness bool
}

func (a Actor) Authenticated() bool {
	return strings.TrimSpace(a.UserID) != ""
}

// Owner is the current state of a user record as seen by this context.
type Owner struct {
	UserID     string
	IsAdmin    bool
	IsBusiness bool
}
