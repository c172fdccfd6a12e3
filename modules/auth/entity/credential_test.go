package entity

import (
	"testing"
	"time"
)

func TestCredentialValidate(t *testing.T) {
	valid := Credential{AccessToken: "tok", TTLSeconds: 3600, IssuedAt: 1000}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid credential rejected: %v", err)
	}

	noToken := Credential{TTLSeconds: 3600}
	if err := noToken.Validate(); err == nil {
		t.Fatal("expected error for missing access token")
	}

	zeroTTL := Credential{AccessToken: "tok", TTLSeconds: 0}
	if err := zeroTTL.Validate(); err == nil {
		t.Fatal("expected error for zero ttl")
	}

	negativeTTL := Credential{AccessToken: "tok", TTLSeconds: -1}
	if err := negativeTTL.Validate(); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}

func TestCredentialExpired(t *testing.T) {
	issued := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	credential := Credential{AccessToken: "tok", TTLSeconds: 3600, IssuedAt: issued.Unix()}

	if credential.Expired(issued.Add(3599 * time.Second)) {
		t.Fatal("credential expired one second early")
	}
	if !credential.Expired(issued.Add(3600 * time.Second)) {
		t.Fatal("credential still valid at the expiry instant")
	}
	if !credential.Expired(issued.Add(3601 * time.Second)) {
		t.Fatal("credential still valid past expiry")
	}
}
