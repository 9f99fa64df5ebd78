package services

import (
	"fmt"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"
)

type Operation string

const (
	OperationListUsers      Operation = "user.list"
	OperationReadUser       Operation = "user.read"
	OperationReadProfile    Operation = "user.profile"
	OperationUpdateUser     Operation = "user.update"
	OperationToggleBusiness Operation = "user.toggle_business"
	OperationDeleteUser     Operation = "user.delete"
)

type rule struct {
	allow  func(actor entities.Actor, targetUserID string) bool
	denied error
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", domainerrors.ErrForbidden, reason)
}

func self(actor entities.Actor, targetUserID string) bool {
	return actor.UserID == targetUserID
}

func selfOrAdmin(actor entities.Actor, targetUserID string) bool {
	return actor.IsAdmin || actor.UserID == targetUserID
}

func admin(actor entities.Actor, _ string) bool {
	return actor.IsAdmin
}

func anyone(entities.Actor, string) bool {
	return true
}

// Every user operation requires an authenticated actor; the table only
// decides ownership and role.
var rules = map[Operation]rule{
	OperationListUsers:      {allow: admin, denied: forbidden("only admins may list users")},
	OperationReadUser:       {allow: selfOrAdmin, denied: forbidden("only the user or an admin may read this user")},
	OperationReadProfile:    {allow: anyone},
	OperationUpdateUser:     {allow: self, denied: forbidden("only the user may update their profile")},
	OperationToggleBusiness: {allow: selfOrAdmin, denied: forbidden("only the user or an admin may change business status")},
	OperationDeleteUser:     {allow: selfOrAdmin, denied: forbidden("only the user or an admin may delete this user")},
}

// Authorize decides whether actor may perform op against the user identified
// by targetUserID. It never touches storage.
func Authorize(actor entities.Actor, op Operation, targetUserID string) error {
	r, ok := rules[op]
	if !ok {
		return fmt.Errorf("%w: %s", domainerrors.ErrUnknownOperation, op)
	}
	if !actor.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	if !r.allow(actor, targetUserID) {
		return r.denied
	}
	return nil
}
