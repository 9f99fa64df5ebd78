package credentials

import (
	"context"

	"cardhub/contexts/identity-access/user-service/ports"
	"cardhub/internal/platform/auth"
	"cardhub/internal/shared/identity"
)

// TokenIssuer adapts the platform JWT signer to ports.TokenIssuer.
type TokenIssuer struct {
	Signer *auth.Signer
}

func (t TokenIssuer) IssueToken(_ context.Context, claims ports.SessionClaims) (string, error) {
	return t.Signer.Issue(identity.Claim{
		UserID:     claims.UserID,
		IsAdmin:    claims.IsAdmin,
		IsBusiness: claims.IsBusiness,
	})
}
