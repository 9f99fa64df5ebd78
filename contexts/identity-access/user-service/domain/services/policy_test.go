package services

import (
	"errors"
	"testing"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
)

func TestAuthorizeUserOperations(t *testing.T) {
	owner := entities.Actor{UserID: "user-1"}
	stranger := entities.Actor{UserID: "user-2"}
	admin := entities.Actor{UserID: "admin-1", IsAdmin: true}
	anonymous := entities.Actor{}

	cases := []struct {
		name   string
		actor  entities.Actor
		op     Operation
		target string
		want   error
	}{
		{"admin lists users", admin, OperationListUsers, "", nil},
		{"user cannot list users", owner, OperationListUsers, "", domainerrors.ErrForbidden},
		{"anonymous cannot list users", anonymous, OperationListUsers, "", domainerrors.ErrUnauthenticated},

		{"self reads", owner, OperationReadUser, "user-1", nil},
		{"admin reads anyone", admin, OperationReadUser, "user-1", nil},
		{"stranger cannot read", stranger, OperationReadUser, "user-1", domainerrors.ErrForbidden},

		{"self updates", owner, OperationUpdateUser, "user-1", nil},
		{"admin cannot update others", admin, OperationUpdateUser, "user-1", domainerrors.ErrForbidden},
		{"stranger cannot update", stranger, OperationUpdateUser, "user-1", domainerrors.ErrForbidden},

		{"self toggles business", owner, OperationToggleBusiness, "user-1", nil},
		{"admin toggles business", admin, OperationToggleBusiness, "user-1", nil},
		{"stranger cannot toggle business", stranger, OperationToggleBusiness, "user-1", domainerrors.ErrForbidden},
		{"anonymous cannot toggle business", anonymous, OperationToggleBusiness, "user-1", domainerrors.ErrUnauthenticated},

		{"self deletes", owner, OperationDeleteUser, "user-1", nil},
		{"admin deletes", admin, OperationDeleteUser, "user-1", nil},
		{"stranger cannot delete", stranger, OperationDeleteUser, "user-1", domainerrors.ErrForbidden},

		{"any caller reads own profile", stranger, OperationReadProfile, "user-2", nil},
		{"anonymous has no profile", anonymous, OperationReadProfile, "", domainerrors.ErrUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.op, tc.target)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthorizeUnknownOperation(t *testing.T) {
	err := Authorize(entities.Actor{UserID: "user-1", IsAdmin: true}, Operation("user.promote"), "user-2")
	if !errors.Is(err, domainerrors.ErrUnknownOperation) {
		t.Fatalf("expected unknown operation, got %v", err)
	}
}

func TestAuthorizeDenialCarriesReason(t *testing.T) {
	err := Authorize(entities.Actor{UserID: "user-1"}, OperationUpdateUser, "user-2")
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err.Error() != "forbidden: only the user may update their profile" {
		t.Fatalf("unexpected denial message %q", err.Error())
	}
}
