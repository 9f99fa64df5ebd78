package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing repository/clock/id ports.
// It is intended for tests and local development wiring.
type Store struct {
	mu sync.RWMutex

	users   map[string]entities.User
	byEmail map[string]string
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]entities.User),
		byEmail: make(map[string]string),
	}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return domainerrors.ErrEmailTaken
	}
	if _, exists := s.users[user.UserID]; exists {
		return domainerrors.ErrEmailTaken
	}
	s.users[user.UserID] = cloneUser(user)
	s.byEmail[user.Email] = user.UserID
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byEmail[email]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return cloneUser(s.users[userID]), nil
}

func (s *Store) ListUsers(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		items = append(items, cloneUser(user))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].UserID < items[j].UserID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) UpdateProfile(
	_ context.Context,
	userID string,
	update entities.ProfileUpdate,
	now time.Time,
) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	user.Name = update.Name
	user.Phone = update.Phone
	user.Address = cloneAddress(update.Address)
	user.UpdatedAt = now
	s.users[userID] = user
	return cloneUser(user), nil
}

func (s *Store) ToggleBusiness(_ context.Context, userID string, now time.Time) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	user.IsBusiness = !user.IsBusiness
	user.UpdatedAt = now
	s.users[userID] = user
	return cloneUser(user), nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, userID)
	delete(s.byEmail, user.Email)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneUser(user entities.User) entities.User {
	user.Address = cloneAddress(user.Address)
	return user
}

func cloneAddress(address *entities.Address) *entities.Address {
	if address == nil {
		return nil
	}
	copied := *address
	return &copied
}
