package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing repository/clock/id ports.
// Every mutation holds the write lock for its whole read-modify-write.
type Store struct {
	mu    sync.RWMutex
	cards map[string]entities.Card
}

func NewStore() *Store {
	return &Store{cards: make(map[string]entities.Card)}
}

func (s *Store) CreateCard(_ context.Context, card entities.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.CardID] = cloneCard(card)
	return nil
}

func (s *Store) GetCard(_ context.Context, cardID string) (entities.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[cardID]
	if !ok {
		return entities.Card{}, domainerrors.ErrCardNotFound
	}
	return cloneCard(card), nil
}

func (s *Store) ListCards(_ context.Context) ([]entities.Card, error) {
	return s.list(func(entities.Card) bool { return true }), nil
}

func (s *Store) ListCardsByOwner(_ context.Context, ownerID string) ([]entities.Card, error) {
	return s.list(func(card entities.Card) bool { return card.OwnerID == ownerID }), nil
}

func (s *Store) UpdateCard(_ context.Context, cardID string, content entities.Content, now time.Time) (entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		return entities.Card{}, domainerrors.ErrCardNotFound
	}
	card.Content = cloneContent(content)
	card.UpdatedAt = now
	s.cards[cardID] = card
	return cloneCard(card), nil
}

func (s *Store) ToggleLike(_ context.Context, cardID string, userID string, now time.Time) (entities.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, ok := s.cards[cardID]
	if !ok {
		return entities.Card{}, domainerrors.ErrCardNotFound
	}
	if idx := slices.Index(card.Likes, userID); idx >= 0 {
		card.Likes = slices.Delete(slices.Clone(card.Likes), idx, idx+1)
	} else {
		card.Likes = append(slices.Clone(card.Likes), userID)
	}
	card.UpdatedAt = now
	s.cards[cardID] = card
	return cloneCard(card), nil
}

func (s *Store) DeleteCard(_ context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[cardID]; !ok {
		return domainerrors.ErrCardNotFound
	}
	delete(s.cards, cardID)
	return nil
}

func (s *Store) DeleteCardsByOwner(_ context.Context, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, card := range s.cards {
		if card.OwnerID == ownerID {
			delete(s.cards, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) RemoveLikesByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, card := range s.cards {
		idx := slices.Index(card.Likes, userID)
		if idx < 0 {
			continue
		}
		card.Likes = slices.Delete(slices.Clone(card.Likes), idx, idx+1)
		s.cards[id] = card
		removed++
	}
	return removed, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) list(keep func(entities.Card) bool) []entities.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Card, 0, len(s.cards))
	for _, card := range s.cards {
		if keep(card) {
			items = append(items, cloneCard(card))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CardID < items[j].CardID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

func cloneCard(card entities.Card) entities.Card {
	card.Content = cloneContent(card.Content)
	card.Likes = slices.Clone(card.Likes)
	if card.Likes == nil {
		card.Likes = []string{}
	}
	return card
}

func cloneContent(content entities.Content) entities.Content {
	if content.Image != nil {
		image := *content.Image
		content.Image = &image
	}
	return content
}
