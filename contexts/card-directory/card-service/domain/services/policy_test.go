package services

import (
	"errors"
	"testing"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
)

func TestAuthorizeCardOperations(t *testing.T) {
	owner := entities.Actor{UserID: "owner-1", IsBusiness: true}
	stranger := entities.Actor{UserID: "user-2"}
	admin := entities.Actor{UserID: "admin-1", IsAdmin: true}

	cases := []struct {
		name    string
		actor   entities.Actor
		op      Operation
		ownerID string
		wantErr error
	}{
		{name: "business creates", actor: owner, op: OperationCreateCard},
		{name: "non business create", actor: stranger, op: OperationCreateCard, wantErr: domainerrors.ErrBusinessRequired},
		{name: "admin without business flag create", actor: admin, op: OperationCreateCard, wantErr: domainerrors.ErrBusinessRequired},
		{name: "anonymous create", actor: entities.Actor{}, op: OperationCreateCard, wantErr: domainerrors.ErrUnauthenticated},
		{name: "owner updates", actor: owner, op: OperationUpdateCard, ownerID: "owner-1"},
		{name: "stranger update", actor: stranger, op: OperationUpdateCard, ownerID: "owner-1", wantErr: domainerrors.ErrForbidden},
		{name: "admin update", actor: admin, op: OperationUpdateCard, ownerID: "owner-1", wantErr: domainerrors.ErrForbidden},
		{name: "owner deletes", actor: owner, op: OperationDeleteCard, ownerID: "owner-1"},
		{name: "admin deletes", actor: admin, op: OperationDeleteCard, ownerID: "owner-1"},
		{name: "stranger delete", actor: stranger, op: OperationDeleteCard, ownerID: "owner-1", wantErr: domainerrors.ErrForbidden},
		{name: "any user likes", actor: stranger, op: OperationToggleLike, ownerID: "owner-1"},
		{name: "anonymous like", actor: entities.Actor{}, op: OperationToggleLike, wantErr: domainerrors.ErrUnauthenticated},
		{name: "any user lists by owner", actor: stranger, op: OperationListByOwner, ownerID: "owner-1"},
		{name: "unknown operation", actor: admin, op: Operation("card.publish"), wantErr: domainerrors.ErrUnknownOperation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.op, tc.ownerID)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBusinessRequiredIsForbidden(t *testing.T) {
	if !errors.Is(domainerrors.ErrBusinessRequired, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrBusinessRequired to match ErrForbidden")
	}
}

func TestAuthorizeDenialCarriesReason(t *testing.T) {
	err := Authorize(entities.Actor{UserID: "user-2"}, OperationDeleteCard, "owner-1")
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err.Error() != "forbidden: only the card owner or an admin may delete it" {
		t.Fatalf("unexpected denial message %q", err.Error())
	}
	if err := Authorize(entities.Actor{UserID: "user-2"}, OperationCreateCard, ""); err != domainerrors.ErrBusinessRequired {
		t.Fatalf("expected ErrBusinessRequired itself, got %v", err)
	}
}
