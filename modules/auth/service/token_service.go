package service

import (
	"context"
	"time"

	"counsel-api/core/config"
	"counsel-api/core/errors"
	"counsel-api/core/logger"
	"counsel-api/modules/auth/dto"
	"counsel-api/modules/auth/entity"
	"counsel-api/modules/auth/repository"

	"golang.org/x/oauth2"
)

// TokenService owns the meeting provider credential lifecycle. Expiry is
// decided locally from the stored issue time and TTL; no provider round trip
// is made to check a token. An expired credential is cleared on read, so a
// later resolve sees a clean absent state rather than a stale token.
type TokenService interface {
	ResolveCredential(ctx context.Context, explicitToken, sessionID string) (string, *errors.AppError)
	ExchangeCode(ctx context.Context, code, sessionID string) (*dto.AuthStatusResponse, *errors.AppError)
	Refresh(ctx context.Context, sessionID string) (*dto.AuthStatusResponse, *errors.AppError)
	Logout(ctx context.Context, sessionID string) *errors.AppError
	Status(ctx context.Context, explicitToken, sessionID string) (*dto.AuthStatusResponse, *errors.AppError)
}

type tokenService struct {
	repo repository.CredentialRepository
	now  func() time.Time
}

func NewTokenService(repo repository.CredentialRepository) TokenService {
	return &tokenService{repo: repo, now: time.Now}
}

// NewTokenServiceWithClock is for tests that pin the clock.
func NewTokenServiceWithClock(repo repository.CredentialRepository, now func() time.Time) TokenService {
	return &tokenService{repo: repo, now: now}
}

func (s *tokenService) oauthConfig() (*oauth2.Config, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}
	if cfg.Zoom.ClientID == "" || cfg.Zoom.ClientSecret == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "meeting provider OAuth not configured", nil)
	}
	return &oauth2.Config{
		ClientID:     cfg.Zoom.ClientID,
		ClientSecret: cfg.Zoom.ClientSecret,
		RedirectURL:  cfg.Zoom.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.Zoom.OAuthURL + "/authorize",
			TokenURL: cfg.Zoom.OAuthURL + "/token",
		},
	}, nil
}

// ResolveCredential returns the access token to use for a provider call.
// An explicit token always wins over the stored credential. An expired
// stored credential is cleared and reported absent.
func (s *tokenService) ResolveCredential(ctx context.Context, explicitToken, sessionID string) (string, *errors.AppError) {
	if explicitToken != "" {
		return explicitToken, nil
	}
	if sessionID == "" {
		return "", errors.NewAppError(errors.ErrTokenExpired, "no session and no explicit token", nil)
	}

	credential, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		logger.Error("TokenService:ResolveCredential:Get:Error", "error", err)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to load credential", err)
	}
	if credential == nil {
		return "", errors.NewAppError(errors.ErrTokenExpired, "not authenticated with meeting provider", nil)
	}

	if credential.Expired(s.now()) {
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			logger.Warn("TokenService:ResolveCredential:Clear:Error", "error", err)
		}
		logger.Info("TokenService:ResolveCredential:Expired", "session_id", sessionID)
		return "", errors.NewAppError(errors.ErrTokenExpired, "meeting provider session expired, please sign in again", nil)
	}

	return credential.AccessToken, nil
}

func (s *tokenService) store(ctx context.Context, sessionID string, token *oauth2.Token) (*entity.Credential, *errors.AppError) {
	ttl := int64(time.Until(token.Expiry).Seconds())
	if ttl <= 0 {
		ttl = 3600
	}
	credential := &entity.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TTLSeconds:   ttl,
		IssuedAt:     s.now().Unix(),
	}
	if err := credential.Validate(); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "provider returned an unusable credential", err)
	}
	if err := s.repo.Save(ctx, sessionID, credential); err != nil {
		logger.Error("TokenService:store:Save:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store credential", err)
	}
	return credential, nil
}

// ExchangeCode swaps the OAuth authorization code for a credential and stores
// it under the session.
func (s *tokenService) ExchangeCode(ctx context.Context, code, sessionID string) (*dto.AuthStatusResponse, *errors.AppError) {
	if code == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "missing authorization code", nil)
	}

	oauthConfig, appErr := s.oauthConfig()
	if appErr != nil {
		return nil, appErr
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		logger.Error("TokenService:ExchangeCode:Exchange:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	credential, appErr := s.store(ctx, sessionID, token)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("TokenService:ExchangeCode:Success", "session_id", sessionID)
	return &dto.AuthStatusResponse{Authenticated: true, ExpiresAt: credential.ExpiresAt().Unix()}, nil
}

// Refresh replaces the stored credential using its refresh token. The old
// credential is discarded whether or not the provider call succeeds locally.
func (s *tokenService) Refresh(ctx context.Context, sessionID string) (*dto.AuthStatusResponse, *errors.AppError) {
	credential, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load credential", err)
	}
	if credential == nil || credential.RefreshToken == "" {
		return nil, errors.NewAppError(errors.ErrTokenExpired, "no refresh token available, please sign in again", nil)
	}

	oauthConfig, appErr := s.oauthConfig()
	if appErr != nil {
		return nil, appErr
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: credential.RefreshToken})
	token, err := tokenSource.Token()
	if err != nil {
		logger.Error("TokenService:Refresh:TokenSource:Error", "error", err)
		if clearErr := s.repo.Clear(ctx, sessionID); clearErr != nil {
			logger.Warn("TokenService:Refresh:Clear:Error", "error", clearErr)
		}
		return nil, errors.NewAppError(errors.ErrTokenExpired, "failed to refresh provider token, please sign in again", err)
	}
	if token.RefreshToken == "" {
		token.RefreshToken = credential.RefreshToken
	}

	fresh, appErr := s.store(ctx, sessionID, token)
	if appErr != nil {
		return nil, appErr
	}

	logger.Info("TokenService:Refresh:Success", "session_id", sessionID)
	return &dto.AuthStatusResponse{Authenticated: true, ExpiresAt: fresh.ExpiresAt().Unix()}, nil
}

func (s *tokenService) Logout(ctx context.Context, sessionID string) *errors.AppError {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to clear credential", err)
	}
	logger.Info("TokenService:Logout:Success", "session_id", sessionID)
	return nil
}

// Status reports whether the request can reach the provider, without making
// a provider call.
func (s *tokenService) Status(ctx context.Context, explicitToken, sessionID string) (*dto.AuthStatusResponse, *errors.AppError) {
	if explicitToken != "" {
		return &dto.AuthStatusResponse{Authenticated: true}, nil
	}

	credential, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load credential", err)
	}
	if credential == nil {
		return &dto.AuthStatusResponse{Authenticated: false}, nil
	}
	if credential.Expired(s.now()) {
		if clearErr := s.repo.Clear(ctx, sessionID); clearErr != nil {
			logger.Warn("TokenService:Status:Clear:Error", "error", clearErr)
		}
		return &dto.AuthStatusResponse{Authenticated: false}, nil
	}
	return &dto.AuthStatusResponse{Authenticated: true, ExpiresAt: credential.ExpiresAt().Unix()}, nil
}
