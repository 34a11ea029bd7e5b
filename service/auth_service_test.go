package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
)

func TestRegisterCreatesUserAndLibrary(t *testing.T) {
	userID := primitive.NewObjectID()
	users := &mockUserRepo{CreateID: userID}
	sessions := &mockSessionRepo{}
	libraries := &mockLibraryRepo{}
	svc := NewAuthService(users, sessions, libraries, newTestTokens(), &mockEmail{}, "", "")

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "Alice@Example.com",
		Password: "Str0ngpass",
		Device:   "phone",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserID != userID.Hex() {
		t.Fatalf("expected user id %s, got %s", userID.Hex(), resp.UserID)
	}
	if resp.Role != string(domain.RoleUser) {
		t.Fatalf("expected default role user, got %s", resp.Role)
	}
	if len(libraries.Created) != 1 || libraries.Created[0].UserID != userID {
		t.Fatalf("expected a library created for the new user")
	}
	if len(sessions.Created) != 1 || sessions.Created[0].Device != "phone" {
		t.Fatalf("expected a session recorded for the device")
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	users := &mockUserRepo{ExistsByEmailResp: true}
	svc := NewAuthService(users, &mockSessionRepo{}, &mockLibraryRepo{}, newTestTokens(), &mockEmail{}, "", "")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "taken@example.com",
		Password: "Str0ngpass",
		Device:   "phone",
	})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestRegisterArtistRequiresSecret(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &mockLibraryRepo{}, newTestTokens(), &mockEmail{}, "artist-secret", "")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "Str0ngpass",
		Role:     "artist",
		Secret:   "wrong",
		Device:   "phone",
	})
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for bad artist secret, got %v", err)
	}
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &mockLibraryRepo{}, newTestTokens(), &mockEmail{}, "", "")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "short",
		Device:   "phone",
	})
	if !apperr.IsKind(err, apperr.BadInput) {
		t.Fatalf("expected BadInput for weak password, got %v", err)
	}
}

func TestLoginFallsBackToEmail(t *testing.T) {
	pw := "Str0ngpass"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	user := &domain.User{ID: primitive.NewObjectID(), Email: "a@b.com", Password: string(hashed), Role: domain.RoleUser}

	users := &mockUserRepo{FindByEmailResp: user}
	sessions := &mockSessionRepo{}
	svc := NewAuthService(users, sessions, &mockLibraryRepo{}, newTestTokens(), &mockEmail{}, "", "")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "a@b.com", Password: pw, Device: "web"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserID != user.ID.Hex() {
		t.Fatalf("expected user id %s, got %s", user.ID.Hex(), resp.UserID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Str0ngpass"), bcrypt.DefaultCost)
	user := &domain.User{ID: primitive.NewObjectID(), Username: "alice", Password: string(hashed)}

	svc := NewAuthService(&mockUserRepo{FindByUsernameResp: user}, &mockSessionRepo{}, &mockLibraryRepo{}, newTestTokens(), &mockEmail{}, "", "")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "alice", Password: "nope", Device: "web"})
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &mockLibraryRepo{}, newTestTokens(), &mockEmail{}, "", "")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Identifier: "ghost", Password: "x", Device: "web"})
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestRefreshTokenRotatesSession(t *testing.T) {
	tokens := newTestTokens()
	userID := primitive.NewObjectID()
	refresh, err := tokens.IssueRefresh(userID.Hex(), domain.RoleUser)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	session := &domain.Session{ID: primitive.NewObjectID(), UserID: userID, Device: "phone", Token: refresh}
	sessions := &mockSessionRepo{FindByUserAndTokenResp: session}
	svc := NewAuthService(&mockUserRepo{}, sessions, &mockLibraryRepo{}, tokens, &mockEmail{}, "", "")

	pair, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh, Device: "phone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sessions.UpdatedSessionID != session.ID {
		t.Fatalf("expected session rotated in place")
	}
	if sessions.UpdatedToken != pair.RefreshToken {
		t.Fatalf("expected stored token to match the new refresh token")
	}
}

func TestRefreshTokenUnknownSession(t *testing.T) {
	tokens := newTestTokens()
	userID := primitive.NewObjectID()
	refresh, _ := tokens.IssueRefresh(userID.Hex(), domain.RoleUser)

	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &mockLibraryRepo{}, tokens, &mockEmail{}, "", "")

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh, Device: "phone"})
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
	if apperr.MessageOf(err) != "invalid token" {
		t.Fatalf("expected 'invalid token', got %q", apperr.MessageOf(err))
	}
}

func TestRefreshTokenDeviceMismatch(t *testing.T) {
	tokens := newTestTokens()
	userID := primitive.NewObjectID()
	refresh, _ := tokens.IssueRefresh(userID.Hex(), domain.RoleUser)

	session := &domain.Session{ID: primitive.NewObjectID(), UserID: userID, Device: "phone", Token: refresh}
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{FindByUserAndTokenResp: session}, &mockLibraryRepo{}, tokens, &mockEmail{}, "", "")

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: refresh, Device: "laptop"})
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
	if apperr.MessageOf(err) != "session expired" {
		t.Fatalf("expected 'session expired', got %q", apperr.MessageOf(err))
	}
}

func TestRequestPasswordResetSilentOnUnknownEmail(t *testing.T) {
	email := &mockEmail{}
	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &mockLibraryRepo{}, newTestTokens(), email, "", "")

	if err := svc.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if email.SentTo != "" {
		t.Fatalf("expected no email sent")
	}
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	tokens := newTestTokens()
	userID := primitive.NewObjectID()
	reset, _ := tokens.IssueReset(userID.Hex(), domain.RoleUser)

	users := &mockUserRepo{}
	sessions := &mockSessionRepo{}
	svc := NewAuthService(users, sessions, &mockLibraryRepo{}, tokens, &mockEmail{}, "", "")

	if err := svc.ResetPassword(context.Background(), reset, "N3wpassword"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := users.UpdatedFields["password"]; !ok {
		t.Fatalf("expected password field updated")
	}
	if sessions.DeletedUserID != userID {
		t.Fatalf("expected all sessions revoked for the user")
	}
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	tokens := newTestTokens()
	userID := primitive.NewObjectID()
	access, _ := tokens.IssueAccess(userID.Hex(), domain.RoleUser)

	svc := NewAuthService(&mockUserRepo{}, &mockSessionRepo{}, &mockLibraryRepo{}, tokens, &mockEmail{}, "", "")

	err := svc.ResetPassword(context.Background(), access, "N3wpassword")
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated for a non-reset token, got %v", err)
	}
}
