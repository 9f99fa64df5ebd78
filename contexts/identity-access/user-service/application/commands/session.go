package commands

import (
	"context"
	"fmt"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	"cardhub/contexts/identity-access/user-service/ports"
)

// SessionResult is returned by registration and login.
type SessionResult struct {
	Token string
	User  entities.User
}

func issueSession(ctx context.Context, tokens ports.TokenIssuer, user entities.User) (SessionResult, error) {
	token, err := tokens.IssueToken(ctx, ports.SessionClaims{
		UserID:     user.UserID,
		IsAdmin:    user.IsAdmin,
		IsBusiness: user.IsBusiness,
	})
	if err != nil {
		return SessionResult{}, fmt.Errorf("%w: %v", domainerrors.ErrTokenIssueFailed, err)
	}
	return SessionResult{Token: token, User: user}, nil
}
