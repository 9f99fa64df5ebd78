package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardhub/contexts/card-directory/card-service/adapters/memory"
	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
)

func TestListCardsByOwnerRequiresAuthentication(t *testing.T) {
	store := memory.NewStore()
	list := ListCardsByOwnerUseCase{Repository: store}

	if _, err := list.Execute(context.Background(), ListCardsByOwnerQuery{OwnerID: "owner-1"}); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	cards, err := list.Execute(context.Background(), ListCardsByOwnerQuery{
		Actor:   entities.Actor{UserID: "viewer-1"},
		OwnerID: "owner-1",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", cards)
	}
}

func TestPublicReads(t *testing.T) {
	store := memory.NewStore()
	if err := store.CreateCard(context.Background(), entities.Card{
		CardID:    "card-1",
		OwnerID:   "owner-1",
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	card, err := GetCardUseCase{Repository: store}.Execute(context.Background(), "card-1")
	if err != nil || card.OwnerID != "owner-1" {
		t.Fatalf("unexpected get result %+v (%v)", card, err)
	}
	if _, err := (GetCardUseCase{Repository: store}).Execute(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}

	cards, err := ListCardsUseCase{Repository: store}.Execute(context.Background())
	if err != nil || len(cards) != 1 {
		t.Fatalf("unexpected list result %+v (%v)", cards, err)
	}
}
