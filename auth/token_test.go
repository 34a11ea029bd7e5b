package auth

import (
	"testing"
	"time"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/domain"
)

func newManager() *Manager {
	return NewManager(ManagerConfig{
		AccessSecret:  "access",
		AccessExpiry:  time.Minute,
		RefreshSecret: "refresh",
		RefreshExpiry: time.Hour,
		ResetSecret:   "reset",
		ResetExpiry:   time.Minute,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newManager()

	token, err := m.IssueAccess("64f000000000000000000001", domain.RoleArtist)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.VerifyAccess(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID != "64f000000000000000000001" {
		t.Fatalf("unexpected subject: %s", claims.SubjectID)
	}
	if claims.Role != domain.RoleArtist {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestTokenFamiliesAreSeparate(t *testing.T) {
	m := newManager()

	refresh, err := m.IssueRefresh("64f000000000000000000001", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.VerifyAccess(refresh); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected a refresh token to fail access verification, got %v", err)
	}
	if _, err := m.VerifyReset(refresh); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected a refresh token to fail reset verification, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewManager(ManagerConfig{
		AccessSecret: "access",
		AccessExpiry: -time.Minute,
	})

	token, err := m.IssueAccess("64f000000000000000000001", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.VerifyAccess(token); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated for expired token, got %v", err)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newManager()

	if _, err := m.VerifyAccess("garbage"); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestIssuePair(t *testing.T) {
	m := newManager()

	access, refresh, err := m.IssuePair("64f000000000000000000001", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue pair: %v", err)
	}
	if _, err := m.VerifyAccess(access); err != nil {
		t.Fatalf("access verification failed: %v", err)
	}
	if _, err := m.VerifyRefresh(refresh); err != nil {
		t.Fatalf("refresh verification failed: %v", err)
	}
}
