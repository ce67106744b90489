package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

type memStore struct {
	mu      sync.Mutex
	refresh map[string]string
	revoked map[string]bool
}

func newMemStore() *memStore {
	return &memStore{refresh: map[string]string{}, revoked: map[string]bool{}}
}

func (s *memStore) SaveRefresh(_ context.Context, token, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[token] = userID
	return nil
}

func (s *memStore) TakeRefresh(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refresh[token]
	if !ok {
		return "", ErrNotFound
	}
	delete(s.refresh, token)
	return id, nil
}

func (s *memStore) DeleteRefresh(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refresh, token)
	return nil
}

func (s *memStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = true
	return nil
}

func (s *memStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[jti], nil
}

func newManager(now time.Time) (*Manager, *memStore) {
	store := newMemStore()
	m := NewManager("test-secret", store)
	m.now = func() time.Time { return now }
	return m, store
}

func TestInitializeAndVerify(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m, store := newManager(now)

	tokens, err := m.Initialize(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "user-1", store.refresh[tokens.RefreshToken])

	claims, err := m.Verify(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestVerifyRejectsExpiredAndForeignTokens(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m, _ := newManager(now)

	tokens, err := m.Initialize(ctx, "user-1")
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(AccessTTL + time.Minute) }
	_, err = m.Verify(ctx, tokens.AccessToken)
	assert.True(t, httperr.IsBusiness(err, "invalid_session"))

	other := NewManager("another-secret", newMemStore())
	_, err = other.Verify(ctx, tokens.AccessToken)
	assert.True(t, httperr.IsBusiness(err, "invalid_session"))

	_, err = m.Verify(ctx, "not-a-token")
	assert.True(t, httperr.IsBusiness(err, "invalid_session"))
}

func TestRefreshRotates(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(time.Now())

	first, err := m.Initialize(ctx, "user-1")
	require.NoError(t, err)

	second, err := m.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotContains(t, store.refresh, first.RefreshToken)

	_, err = m.Refresh(ctx, first.RefreshToken)
	assert.True(t, httperr.IsBusiness(err, "invalid_session"))
}

func TestTeardownRevokesAccessToken(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(time.Now())

	tokens, err := m.Initialize(ctx, "user-1")
	require.NoError(t, err)
	claims, err := m.Verify(ctx, tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, m.Teardown(ctx, tokens.RefreshToken, claims))

	assert.Empty(t, store.refresh)
	_, err = m.Verify(ctx, tokens.AccessToken)
	assert.True(t, httperr.IsBusiness(err, "invalid_session"))

	_, err = m.Refresh(ctx, tokens.RefreshToken)
	assert.True(t, httperr.IsBusiness(err, "invalid_session"))
}
