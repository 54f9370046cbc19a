package tokenstoremock

import (
	"context"
	"sync"

	"github.com/coding1100/appointment-setter-console/internal/tokenstore"
)

type StoreOption func(*Store)

// Store is an in-memory token store for tests.
type Store struct {
	mu   sync.Mutex
	pair tokenstore.Pair
	set  bool

	loadErr, saveErr, clearErr error

	saves, clears int
}

func WithPair(pair tokenstore.Pair) StoreOption {
	return func(s *Store) {
		s.pair = pair
		s.set = true
	}
}

func WithLoadError(err error) StoreOption {
	return func(s *Store) { s.loadErr = err }
}

func WithSaveError(err error) StoreOption {
	return func(s *Store) { s.saveErr = err }
}

func WithClearError(err error) StoreOption {
	return func(s *Store) { s.clearErr = err }
}

var _ = tokenstore.Store(&Store{})

func NewInMemStore(opts ...StoreOption) *Store {
	s := &Store{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Load(_ context.Context) (tokenstore.Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return tokenstore.Pair{}, s.loadErr
	}
	if !s.set {
		return tokenstore.Pair{}, tokenstore.ErrNoTokens
	}
	return s.pair, nil
}

func (s *Store) Save(_ context.Context, pair tokenstore.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.pair = pair
	s.set = true
	s.saves++
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearErr != nil {
		return s.clearErr
	}
	s.pair = tokenstore.Pair{}
	s.set = false
	s.clears++
	return nil
}

// TPair returns the stored pair without error injection, for assertions.
func (s *Store) TPair() (tokenstore.Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair, s.set
}

// TSaves returns how many times Save succeeded.
func (s *Store) TSaves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// TClears returns how many times Clear succeeded.
func (s *Store) TClears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}
