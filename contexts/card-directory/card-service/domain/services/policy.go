package services

import (
	"fmt"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
)

type Operation string

const (
	OperationCreateCard  Operation = "card.create"
	OperationListByOwner Operation = "card.list_by_owner"
	OperationUpdateCard  Operation = "card.update"
	OperationDeleteCard  Operation = "card.delete"
	OperationToggleLike  Operation = "card.like"
)

type rule struct {
	allow  func(actor entities.Actor, ownerID string) bool
	denied error
}

func forbidden(reason string) error {
	return fmt.Errorf("%w: %s", domainerrors.ErrForbidden, reason)
}

func business(actor entities.Actor, _ string) bool {
	return actor.IsBusiness
}

func owner(actor entities.Actor, ownerID string) bool {
	return actor.UserID == ownerID
}

func ownerOrAdmin(actor entities.Actor, ownerID string) bool {
	return actor.IsAdmin || actor.UserID == ownerID
}

func anyone(entities.Actor, string) bool {
	return true
}

// Public card reads have no entry: they never consult the policy.
var rules = map[Operation]rule{
	OperationCreateCard:  {allow: business, denied: domainerrors.ErrBusinessRequired},
	OperationListByOwner: {allow: anyone},
	OperationUpdateCard:  {allow: owner, denied: forbidden("only the card owner may edit it")},
	OperationDeleteCard:  {allow: ownerOrAdmin, denied: forbidden("only the card owner or an admin may delete it")},
	OperationToggleLike:  {allow: anyone},
}

// Authorize decides whether actor may perform op on a card owned by ownerID.
// For card creation the actor's business flag must already reflect the
// stored user record.
func Authorize(actor entities.Actor, op Operation, ownerID string) error {
	r, ok := rules[op]
	if !ok {
		return fmt.Errorf("%w: %s", domainerrors.ErrUnknownOperation, op)
	}
	if !actor.Authenticated() {
		return domainerrors.ErrUnauthenticated
	}
	if !r.allow(actor, ownerID) {
		return r.denied
	}
	return nil
}
