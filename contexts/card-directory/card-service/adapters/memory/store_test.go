package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"
)

func seedCard(t *testing.T, store *Store, cardID string, ownerID string, createdAt time.Time) {
	t.Helper()
	err := store.CreateCard(context.Background(), entities.Card{
		CardID:    cardID,
		OwnerID:   ownerID,
		CreatedAt: createdAt,
		Content: entities.Content{
			Title:   "Card " + cardID,
			Image:   &entities.Image{URL: "https://img.example.com/a.png", Alt: "logo"},
			Address: entities.Address{Country: "Israel", City: "Haifa", Street: "Herzl", HouseNumber: 1},
		},
	})
	if err != nil {
		t.Fatalf("seed card failed: %v", err)
	}
}

func TestToggleLikeTwiceRestoresLikes(t *testing.T) {
	store := NewStore()
	seedCard(t, store, "card-1", "owner-1", time.Now())
	now := time.Now().UTC()

	liked, err := store.ToggleLike(context.Background(), "card-1", "user-1", now)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if len(liked.Likes) != 1 || liked.Likes[0] != "user-1" {
		t.Fatalf("expected exactly user-1 in likes, got %v", liked.Likes)
	}

	unliked, err := store.ToggleLike(context.Background(), "card-1", "user-1", now)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Fatalf("expected likes restored to empty, got %v", unliked.Likes)
	}
}

func TestToggleLikeConcurrentUsersNeverDuplicate(t *testing.T) {
	store := NewStore()
	seedCard(t, store, "card-1", "owner-1", time.Now())

	var wg sync.WaitGroup
	for _, userID := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			if _, err := store.ToggleLike(context.Background(), "card-1", userID, time.Now()); err != nil {
				t.Errorf("toggle failed: %v", err)
			}
		}(userID)
	}
	wg.Wait()

	card, err := store.GetCard(context.Background(), "card-1")
	if err != nil {
		t.Fatalf("get card failed: %v", err)
	}
	if len(card.Likes) != 8 {
		t.Fatalf("expected 8 distinct likes, got %v", card.Likes)
	}
}

func TestToggleLikeUnknownCard(t *testing.T) {
	_, err := NewStore().ToggleLike(context.Background(), "missing", "user-1", time.Now())
	if !errors.Is(err, domainerrors.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestReturnedCardsAreCopies(t *testing.T) {
	store := NewStore()
	seedCard(t, store, "card-1", "owner-1", time.Now())

	card, err := store.GetCard(context.Background(), "card-1")
	if err != nil {
		t.Fatalf("get card failed: %v", err)
	}
	card.Content.Image.URL = "mutated"
	card.Likes = append(card.Likes, "intruder")

	again, err := store.GetCard(context.Background(), "card-1")
	if err != nil {
		t.Fatalf("get card failed: %v", err)
	}
	if again.Content.Image.URL == "mutated" || len(again.Likes) != 0 {
		t.Fatalf("store state leaked through returned value: %+v", again)
	}
}

func TestPurgeHelpersRemoveOwnerCardsAndLikes(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedCard(t, store, "card-a", "owner-1", base)
	seedCard(t, store, "card-b", "owner-1", base.Add(time.Minute))
	seedCard(t, store, "card-c", "owner-2", base.Add(2*time.Minute))
	if _, err := store.ToggleLike(context.Background(), "card-c", "owner-1", base); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	deleted, err := store.DeleteCardsByOwner(context.Background(), "owner-1")
	if err != nil || deleted != 2 {
		t.Fatalf("expected 2 deleted cards, got %d (%v)", deleted, err)
	}
	removed, err := store.RemoveLikesByUser(context.Background(), "owner-1")
	if err != nil || removed != 1 {
		t.Fatalf("expected 1 removed like, got %d (%v)", removed, err)
	}

	cards, err := store.ListCards(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(cards) != 1 || cards[0].CardID != "card-c" || len(cards[0].Likes) != 0 {
		t.Fatalf("unexpected remaining cards %+v", cards)
	}
}

func TestListCardsByOwnerOrdersByCreation(t *testing.T) {
	store := NewStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedCard(t, store, "card-late", "owner-1", base.Add(time.Hour))
	seedCard(t, store, "card-early", "owner-1", base)
	seedCard(t, store, "card-other", "owner-2", base)

	cards, err := store.ListCardsByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(cards) != 2 || cards[0].CardID != "card-early" || cards[1].CardID != "card-late" {
		t.Fatalf("unexpected owner cards %+v", cards)
	}
}
