// Package session issues and checks API sessions. A session is a short
// lived signed access token plus an opaque refresh token kept in the store;
// signing out deletes the refresh token and revokes the access token id.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

const (
	AccessTTL  = time.Hour
	RefreshTTL = 30 * 24 * time.Hour
)

var ErrNotFound = errors.New("session: not found")

var errInvalid = httperr.ErrBusiness("invalid_session")

type Store interface {
	SaveRefresh(ctx context.Context, token, userID string, ttl time.Duration) error
	// TakeRefresh returns the owner of token and forgets it, so a refresh
	// token can be used once.
	TakeRefresh(ctx context.Context, token string) (string, error)
	DeleteRefresh(ctx context.Context, token string) error

	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Claims struct {
	jwt.RegisteredClaims
}

type Tokens struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Manager struct {
	secret []byte
	store  Store
	now    func() time.Time
}

func NewManager(secret string, store Store) *Manager {
	return &Manager{
		secret: []byte(secret),
		store:  store,
		now:    time.Now,
	}
}

// Initialize starts a session for userID.
func (m *Manager) Initialize(ctx context.Context, userID string) (*Tokens, error) {
	now := m.now()
	exp := now.Add(AccessTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	refresh := uuid.NewString()
	if err := m.store.SaveRefresh(ctx, refresh, userID, RefreshTTL); err != nil {
		return nil, err
	}

	return &Tokens{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

// Refresh rotates the refresh token and issues a new access token.
func (m *Manager) Refresh(ctx context.Context, refresh string) (*Tokens, error) {
	if refresh == "" {
		return nil, errInvalid
	}

	userID, err := m.store.TakeRefresh(ctx, refresh)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errInvalid
		}
		return nil, err
	}

	return m.Initialize(ctx, userID)
}

// Teardown ends a session. claims may be nil when only the refresh token
// is known.
func (m *Manager) Teardown(ctx context.Context, refresh string, claims *Claims) error {
	if refresh != "" {
		if err := m.store.DeleteRefresh(ctx, refresh); err != nil {
			return err
		}
	}

	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}
	return m.store.Revoke(ctx, claims.ID, ttl)
}

// Verify checks signature, expiry and revocation of an access token.
func (m *Manager) Verify(ctx context.Context, token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, errInvalid
	}

	revoked, err := m.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errInvalid
	}

	return claims, nil
}
