package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// MockUserSettingsStore is an in-memory store.UserSettingsStore.
type MockUserSettingsStore struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	UpsertFn func(ctx context.Context, settings *domain.UserSettings) error

	mu       sync.Mutex
	Settings map[uuid.UUID]*domain.UserSettings
}

// NewMockUserSettingsStore creates an empty MockUserSettingsStore.
func NewMockUserSettingsStore() *MockUserSettingsStore {
	return &MockUserSettingsStore{Settings: make(map[uuid.UUID]*domain.UserSettings)}
}

var _ store.UserSettingsStore = (*MockUserSettingsStore)(nil)

// Get implements store.UserSettingsStore.
func (m *MockUserSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	settings, ok := m.Settings[userID]
	if !ok {
		return nil, store.ErrSettingsNotFound
	}
	copied := *settings
	return &copied, nil
}

// Upsert implements store.UserSettingsStore.
func (m *MockUserSettingsStore) Upsert(ctx context.Context, settings *domain.UserSettings) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, settings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *settings
	if existing, ok := m.Settings[settings.UserID]; ok {
		copied.CreatedAt = existing.CreatedAt
	}
	m.Settings[settings.UserID] = &copied
	return nil
}

// Delete implements store.UserSettingsStore.
func (m *MockUserSettingsStore) Delete(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Settings[userID]; !ok {
		return store.ErrSettingsNotFound
	}
	delete(m.Settings, userID)
	return nil
}

// WithTx returns the same mock; transactions are not simulated.
func (m *MockUserSettingsStore) WithTx(*sql.Tx) store.UserSettingsStore {
	return m
}
