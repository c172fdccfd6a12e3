package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"counsel-api/core/cache"
	"counsel-api/core/constants"
	"counsel-api/modules/auth/entity"
)

// CredentialRepository stores one provider credential per operator session.
type CredentialRepository interface {
	Get(ctx context.Context, sessionID string) (*entity.Credential, error)
	Save(ctx context.Context, sessionID string, credential *entity.Credential) error
	Clear(ctx context.Context, sessionID string) error
}

type credentialRepository struct {
	cache cache.Cache
}

func NewCredentialRepository(c cache.Cache) CredentialRepository {
	return &credentialRepository{cache: c}
}

func credentialKey(sessionID string) string {
	return constants.CredentialKeyPrefix + sessionID
}

// Get returns (nil, nil) when no credential is stored for the session.
func (r *credentialRepository) Get(ctx context.Context, sessionID string) (*entity.Credential, error) {
	raw, err := r.cache.Get(ctx, credentialKey(sessionID))
	if err == cache.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}

	var credential entity.Credential
	if err := json.Unmarshal([]byte(raw), &credential); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &credential, nil
}

func (r *credentialRepository) Save(ctx context.Context, sessionID string, credential *entity.Credential) error {
	raw, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	// Keyed to the session lifetime, not the token lifetime: the refresh
	// token outlives the access token and must stay reachable.
	if err := r.cache.Set(ctx, credentialKey(sessionID), string(raw), constants.SessionTTL); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *credentialRepository) Clear(ctx context.Context, sessionID string) error {
	if err := r.cache.Del(ctx, credentialKey(sessionID)); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
