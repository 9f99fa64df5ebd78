package queries

import (
	"context"
	"strings"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
	"cardhub/contexts/card-directory/card-service/ports"
)

// GetCardUseCase is a public read.
type GetCardUseCase struct {
	Repository ports.Repository
}

func (u GetCardUseCase) Execute(ctx context.Context, cardID string) (entities.Card, error) {
	if strings.TrimSpace(cardID) == "" {
		return entities.Card{}, domainerrors.ErrInvalidCardID
	}
	return u.Repository.GetCard(ctx, cardID)
}
