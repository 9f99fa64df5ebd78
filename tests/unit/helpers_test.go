package unit

import (
	"context"
	"testing"

	card "cardhub/contexts/card-directory/card-service"
	user "cardhub/contexts/identity-access/user-service"
	"cardhub/contexts/identity-access/user-service/ports"
	userhttp "cardhub/contexts/identity-access/user-service/transport/http"
	"cardhub/internal/app/bridge"
	"cardhub/internal/shared/identity"
)

type stubTokens struct{}

func (stubTokens) IssueToken(_ context.Context, claims ports.SessionClaims) (string, error) {
	return "token-" + claims.UserID, nil
}

// lazyPurger lets the user module be built before the card module it calls.
type lazyPurger struct {
	cards *card.Module
}

func (p *lazyPurger) PurgeOwner(ctx context.Context, userID string) error {
	return p.cards.PurgeOwner.Execute(ctx, userID)
}

type directory struct {
	users user.Module
	cards card.Module
}

func newDirectory() directory {
	purger := &lazyPurger{}
	users := user.NewInMemoryModule(nil, stubTokens{}, purger)
	cards := card.NewInMemoryModule(nil, bridge.UserDirectory{Users: users.Store})
	purger.cards = &cards
	return directory{users: users, cards: cards}
}

func (d directory) register(t *testing.T, email string, business bool) identity.Claim {
	t.Helper()
	resp, err := d.users.Handler.RegisterHandler(context.Background(), userhttp.RegisterUserRequest{
		Email:      email,
		Password:   "Passw0rd!",
		Name:       "Unit Tester",
		Phone:      "050-1234567",
		IsBusiness: business,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", email, err)
	}
	return identity.Claim{
		UserID:     resp.User.ID,
		IsAdmin:    resp.User.IsAdmin,
		IsBusiness: resp.User.IsBusiness,
	}
}
