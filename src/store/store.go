package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/model"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUserNotFound   = errors.New("user not found")
	ErrPersistence    = errors.New("snapshot persistence failed")
)

// Store is the in-memory user registry. Every operation, reads included, runs
// under a single mutex, so the duplicate check and the insert in AddUser are
// one atomic step.
type Store struct {
	mu      sync.Mutex
	users   []*model.User
	byEmail map[string]int
	codec   Codec
}

type Option func(*Store)

// WithCodec selects the snapshot encoding. The default is JSONCodec.
func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

func New(opts ...Option) *Store {
	s := &Store{
		byEmail: make(map[string]int),
		codec:   JSONCodec{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddUser registers a new user without a portfolio. Emails are matched exactly.
func (s *Store) AddUser(firstName, lastName string, age int, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return model.User{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}

	u := model.NewUser(firstName, lastName, age, email)
	s.byEmail[email] = len(s.users)
	s.users = append(s.users, u)

	logger.L.Info("Added new user", "id", u.ID, "email", email)
	return u.Clone(), nil
}

// UpdatePortfolio replaces the user's portfolio with a copy of p.
func (s *Store) UpdatePortfolio(email string, p model.Portfolio) error {
	if !p.Currency.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidCurrency, string(p.Currency))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byEmail[email]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	s.users[idx].Portfolio = &p

	logger.L.Info("Updated user portfolio", "email", email, "currency", p.Currency)
	return nil
}

// GetUser returns a deep copy of the user registered under email.
func (s *Store) GetUser(email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byEmail[email]
	if !ok {
		return model.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	return s.users[idx].Clone(), nil
}

// Users returns deep copies of every user in registration order.
func (s *Store) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Clear empties the registry. Maintenance and tests only.
func (s *Store) Clear() {
	logger.L.Warn("Clearing contents of in-memory storage")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.byEmail = make(map[string]int)
}

// SaveSnapshot writes the whole registry to path, replacing any previous snapshot.
func (s *Store) SaveSnapshot(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.snapshotLocked()
	if err := s.codec.Encode(path, users); err != nil {
		return fmt.Errorf("%w: save %s: %w", ErrPersistence, path, err)
	}
	logger.L.Info("Saved all users to snapshot", "path", path, "users", len(users))
	return nil
}

// LoadSnapshot replaces the registry with the contents of path. On any error
// the registry is left untouched.
func (s *Store) LoadSnapshot(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.codec.Decode(path)
	if err != nil {
		return fmt.Errorf("%w: load %s: %w", ErrPersistence, path, err)
	}

	loaded := make([]*model.User, 0, len(users))
	index := make(map[string]int, len(users))
	ids := make(map[uuid.UUID]struct{}, len(users))
	for i := range users {
		u := users[i]
		if u.Email == "" {
			return fmt.Errorf("%w: load %s: user %d has no email", ErrPersistence, path, i)
		}
		if _, dup := index[u.Email]; dup {
			return fmt.Errorf("%w: load %s: duplicate email %s", ErrPersistence, path, u.Email)
		}
		if u.ID == uuid.Nil {
			return fmt.Errorf("%w: load %s: user %s has no id", ErrPersistence, path, u.Email)
		}
		if _, dup := ids[u.ID]; dup {
			return fmt.Errorf("%w: load %s: duplicate id %s", ErrPersistence, path, u.ID)
		}
		ids[u.ID] = struct{}{}
		if u.Portfolio != nil && !u.Portfolio.Currency.Valid() {
			return fmt.Errorf("%w: load %s: %w for %s", ErrPersistence, path, model.ErrInvalidCurrency, u.Email)
		}
		index[u.Email] = len(loaded)
		loaded = append(loaded, &u)
	}

	s.users = loaded
	s.byEmail = index
	logger.L.Info("Loaded users from snapshot", "path", path, "users", len(loaded))
	return nil
}

func (s *Store) snapshotLocked() []model.User {
	users := make([]model.User, len(s.users))
	for i, u := range s.users {
		users[i] = u.Clone()
	}
	return users
}
