package service

import (
	"context"
	"testing"
	"time"

	"counsel-api/core/cache"
	"counsel-api/core/errors"
	"counsel-api/modules/auth/entity"
	"counsel-api/modules/auth/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRepo(t *testing.T) repository.CredentialRepository {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewCredentialRepository(cache.NewRedisCacheFromClient(client))
}

func TestResolveCredentialExplicitTokenWins(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	issued := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, "sess1", &entity.Credential{
		AccessToken: "stored-token",
		TTLSeconds:  3600,
		IssuedAt:    issued.Unix(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := NewTokenServiceWithClock(repo, func() time.Time { return issued.Add(time.Minute) })

	token, appErr := svc.ResolveCredential(ctx, "explicit-token", "sess1")
	if appErr != nil {
		t.Fatalf("ResolveCredential: %v", appErr)
	}
	if token != "explicit-token" {
		t.Fatalf("got %q, want the explicit token", token)
	}
}

func TestResolveCredentialStoredValid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	issued := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, "sess1", &entity.Credential{
		AccessToken: "stored-token",
		TTLSeconds:  3600,
		IssuedAt:    issued.Unix(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := NewTokenServiceWithClock(repo, func() time.Time { return issued.Add(30 * time.Minute) })

	token, appErr := svc.ResolveCredential(ctx, "", "sess1")
	if appErr != nil {
		t.Fatalf("ResolveCredential: %v", appErr)
	}
	if token != "stored-token" {
		t.Fatalf("got %q, want stored-token", token)
	}
}

// A credential issued at T with ttl 3600, queried at T+3601, is reported
// absent and removed from the store.
func TestResolveCredentialExpiredClearsStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	issued := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, "sess1", &entity.Credential{
		AccessToken: "stored-token",
		TTLSeconds:  3600,
		IssuedAt:    issued.Unix(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := NewTokenServiceWithClock(repo, func() time.Time { return issued.Add(3601 * time.Second) })

	_, appErr := svc.ResolveCredential(ctx, "", "sess1")
	if appErr == nil {
		t.Fatal("expected an auth-expired error")
	}
	if appErr.Code != errors.ErrTokenExpired {
		t.Fatalf("got code %s, want %s", appErr.Code, errors.ErrTokenExpired)
	}

	stored, err := repo.Get(ctx, "sess1")
	if err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if stored != nil {
		t.Fatalf("expired credential still in store: %+v", stored)
	}
}

func TestResolveCredentialNoSession(t *testing.T) {
	svc := NewTokenServiceWithClock(newTestRepo(t), time.Now)

	_, appErr := svc.ResolveCredential(context.Background(), "", "")
	if appErr == nil || appErr.Code != errors.ErrTokenExpired {
		t.Fatalf("expected %s without session or token, got %v", errors.ErrTokenExpired, appErr)
	}
}

func TestStatusReportsExpiredAsUnauthenticated(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	issued := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, "sess1", &entity.Credential{
		AccessToken: "stored-token",
		TTLSeconds:  3600,
		IssuedAt:    issued.Unix(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := NewTokenServiceWithClock(repo, func() time.Time { return issued.Add(2 * time.Hour) })

	status, appErr := svc.Status(ctx, "", "sess1")
	if appErr != nil {
		t.Fatalf("Status: %v", appErr)
	}
	if status.Authenticated {
		t.Fatal("expired credential reported as authenticated")
	}
}

func TestLogoutClearsStore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "sess1", &entity.Credential{
		AccessToken: "stored-token",
		TTLSeconds:  3600,
		IssuedAt:    time.Now().Unix(),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	svc := NewTokenService(repo)
	if appErr := svc.Logout(ctx, "sess1"); appErr != nil {
		t.Fatalf("Logout: %v", appErr)
	}

	stored, err := repo.Get(ctx, "sess1")
	if err != nil {
		t.Fatalf("get after logout: %v", err)
	}
	if stored != nil {
		t.Fatal("credential still present after logout")
	}
}
