package unit

import (
	"context"
	"errors"
	"testing"

	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
	userhttp "cardhub/contexts/identity-access/user-service/transport/http"
	"cardhub/internal/platform/validation"
	"cardhub/internal/shared/identity"
)

func TestUserRegisterThenLogin(t *testing.T) {
	d := newDirectory()

	registered, err := d.users.Handler.RegisterHandler(context.Background(), userhttp.RegisterUserRequest{
		Email:    "A@B.com",
		Password: "longpass1",
		Phone:    "050-1234567",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if registered.User.Email != "a@b.com" {
		t.Fatalf("expected lowercased email, got %q", registered.User.Email)
	}
	if registered.Token != "token-"+registered.User.ID {
		t.Fatalf("unexpected token %q", registered.Token)
	}

	login, err := d.users.Handler.LoginHandler(context.Background(), userhttp.LoginRequest{
		Email:    "a@b.com",
		Password: "longpass1",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.Token != registered.Token {
		t.Fatalf("expected token for same user, got %q", login.Token)
	}

	_, err = d.users.Handler.LoginHandler(context.Background(), userhttp.LoginRequest{
		Email:    "a@b.com",
		Password: "wrongpass",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestUserRegisterRejectsInvalidPayload(t *testing.T) {
	d := newDirectory()

	_, err := d.users.Handler.RegisterHandler(context.Background(), userhttp.RegisterUserRequest{
		Email:    "not-an-email",
		Password: "longpass1",
	})
	var vErr *validation.Error
	if !errors.As(err, &vErr) || vErr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
}

func TestUserListRequiresAdmin(t *testing.T) {
	d := newDirectory()
	claim := d.register(t, "plain@example.com", false)

	if _, err := d.users.Handler.ListUsersHandler(context.Background(), claim); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := d.users.Handler.ListUsersHandler(context.Background(), identity.Claim{}); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestUserUpdateOnlyOwnProfile(t *testing.T) {
	d := newDirectory()
	alice := d.register(t, "alice@example.com", false)
	bob := d.register(t, "bob@example.com", false)
	req := userhttp.UpdateUserRequest{
		Name:  "Alice Cohen",
		Phone: "050-1234567",
		Address: &userhttp.AddressDTO{
			Country:     "Israel",
			City:        "Haifa",
			Street:      "Herzl",
			HouseNumber: 7,
		},
	}

	if _, err := d.users.Handler.UpdateUserHandler(context.Background(), bob, alice.UserID, req); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := d.users.Handler.UpdateUserHandler(context.Background(), alice, alice.UserID, req)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Alice Cohen" || updated.Address == nil || updated.Address.City != "Haifa" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Email != "alice@example.com" {
		t.Fatalf("email must not change, got %q", updated.Email)
	}
}

func TestUserToggleBusinessTwiceRestoresFlag(t *testing.T) {
	d := newDirectory()
	claim := d.register(t, "flip@example.com", false)

	first, err := d.users.Handler.ToggleBusinessHandler(context.Background(), claim, claim.UserID)
	if err != nil || !first.IsBusiness {
		t.Fatalf("expected business after first toggle, got %+v err=%v", first, err)
	}
	second, err := d.users.Handler.ToggleBusinessHandler(context.Background(), claim, claim.UserID)
	if err != nil || second.IsBusiness {
		t.Fatalf("expected non-business after second toggle, got %+v err=%v", second, err)
	}
}

func TestUserDeleteCascadesToCards(t *testing.T) {
	d := newDirectory()
	owner := d.register(t, "owner@example.com", true)
	fan := d.register(t, "fan@example.com", true)

	ownedCard, err := d.cards.Handler.CreateCardHandler(context.Background(), owner, validCardRequest())
	if err != nil {
		t.Fatalf("create owner card failed: %v", err)
	}
	fanCard, err := d.cards.Handler.CreateCardHandler(context.Background(), fan, validCardRequest())
	if err != nil {
		t.Fatalf("create fan card failed: %v", err)
	}
	if _, err := d.cards.Handler.ToggleLikeHandler(context.Background(), owner, fanCard.ID); err != nil {
		t.Fatalf("like failed: %v", err)
	}

	deleted, err := d.users.Handler.DeleteUserHandler(context.Background(), owner, owner.UserID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != owner.UserID {
		t.Fatalf("expected deleted user in response, got %q", deleted.ID)
	}

	if _, err := d.cards.Handler.GetCardHandler(context.Background(), ownedCard.ID); err == nil {
		t.Fatalf("expected owned card to be removed")
	}
	remaining, err := d.cards.Handler.GetCardHandler(context.Background(), fanCard.ID)
	if err != nil {
		t.Fatalf("get fan card failed: %v", err)
	}
	if len(remaining.Likes) != 0 {
		t.Fatalf("expected like removed, got %v", remaining.Likes)
	}
	if _, err := d.users.Handler.GetUserHandler(context.Background(), fan, owner.UserID); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for foreign read, got %v", err)
	}
}
