package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MockCardSetStore is an in-memory store.CardSetStore. Any Fn field that is
// set overrides the default map-backed behavior.
type MockCardSetStore struct {
	CreateFn     func(ctx context.Context, set *domain.CardSet) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.CardSet, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error)
	UpdateFn     func(ctx context.Context, set *domain.CardSet) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error

	mu   sync.Mutex
	Sets map[uuid.UUID]*domain.CardSet

	// TxCount counts WithTx calls.
	TxCount int
}

// NewMockCardSetStore creates an empty MockCardSetStore.
func NewMockCardSetStore() *MockCardSetStore {
	return &MockCardSetStore{Sets: make(map[uuid.UUID]*domain.CardSet)}
}

var _ store.CardSetStore = (*MockCardSetStore)(nil)

// Create implements store.CardSetStore.
func (m *MockCardSetStore) Create(ctx context.Context, set *domain.CardSet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, set)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Sets[set.ID]; exists {
		return store.ErrDuplicate
	}
	m.Sets[set.ID] = cloneSet(set)
	return nil
}

// GetByID implements store.CardSetStore.
func (m *MockCardSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.Sets[id]
	if !ok {
		return nil, store.ErrCardSetNotFound
	}
	return cloneSet(set), nil
}

// GetByIDForUpdate implements store.CardSetStore. Row locking is not simulated.
func (m *MockCardSetStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.CardSet, error) {
	return m.GetByID(ctx, id)
}

// ListByUser implements store.CardSetStore.
func (m *MockCardSetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CardSet, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sets := make([]*domain.CardSet, 0)
	for _, set := range m.Sets {
		if set.UserID == userID {
			sets = append(sets, cloneSet(set))
		}
	}
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].UpdatedAt.After(sets[j].UpdatedAt)
	})
	return sets, nil
}

// Update implements store.CardSetStore.
func (m *MockCardSetStore) Update(ctx context.Context, set *domain.CardSet) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, set)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Sets[set.ID]; !ok {
		return store.ErrCardSetNotFound
	}
	m.Sets[set.ID] = cloneSet(set)
	return nil
}

// Delete implements store.CardSetStore.
func (m *MockCardSetStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Sets[id]; !ok {
		return store.ErrCardSetNotFound
	}
	delete(m.Sets, id)
	return nil
}

// WithTx records the call and returns the same mock.
func (m *MockCardSetStore) WithTx(*sql.Tx) store.CardSetStore {
	m.mu.Lock()
	m.TxCount++
	m.mu.Unlock()
	return m
}

func cloneSet(set *domain.CardSet) *domain.CardSet {
	copied := *set
	copied.Cards = append([]domain.Card(nil), set.Cards...)
	return &copied
}
