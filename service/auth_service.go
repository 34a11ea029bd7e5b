package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/logger"
	"github.com/Sanket4450/SonicBox-sub000/repository"
	"github.com/Sanket4450/SonicBox-sub000/utils"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPair, error)
	Logout(ctx context.Context, accessToken, device string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	guards       *guards
	users        repository.UserRepository
	sessions     repository.SessionRepository
	libraries    repository.LibraryRepository
	tokens       *auth.Manager
	email        utils.EmailService
	artistSecret string
	adminSecret  string
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	libraries repository.LibraryRepository,
	tokens *auth.Manager,
	email utils.EmailService,
	artistSecret, adminSecret string,
) AuthService {
	return &authService{
		guards:       &guards{tokens: tokens, users: users},
		users:        users,
		sessions:     sessions,
		libraries:    libraries,
		tokens:       tokens,
		email:        email,
		artistSecret: artistSecret,
		adminSecret:  adminSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.New(apperr.BadInput, "invalid role")
	}

	// Artist and admin self-registration is gated by a role-elevation secret.
	switch role {
	case domain.RoleArtist:
		if s.artistSecret == "" || req.Secret != s.artistSecret {
			return nil, apperr.New(apperr.Forbidden, "invalid artist secret")
		}
	case domain.RoleAdmin:
		if s.adminSecret == "" || req.Secret != s.adminSecret {
			return nil, apperr.New(apperr.Forbidden, "invalid admin secret")
		}
	}

	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, apperr.New(apperr.BadInput, err.Error())
	}

	email := strings.ToLower(req.Email)

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to check email", err)
	}
	if taken {
		return nil, apperr.New(apperr.Conflict, "user with this email already exists")
	}

	taken, err = s.users.ExistsByUsername(ctx, req.Username, primitive.NilObjectID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to check username", err)
	}
	if taken {
		return nil, apperr.New(apperr.Conflict, "username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	now := time.Now().Unix()
	user := &domain.User{
		Username:    req.Username,
		Email:       email,
		Password:    string(hashed),
		Role:        role,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		State:       req.State,
		Country:     req.Country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	userID, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create user", err)
	}

	// Every user owns exactly one library, created alongside registration.
	if err := s.libraries.Create(ctx, &domain.Library{UserID: userID}); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create library", err)
	}

	tokens, err := s.issueSession(ctx, userID.Hex(), role, req.Device)
	if err != nil {
		return nil, err
	}

	logger.Info(logger.EventGeneral, "New user registered", logger.Fields(
		"user_id", userID.Hex(),
		"role", string(role),
	))

	return &dto.AuthResponse{UserID: userID.Hex(), Role: string(role), Tokens: *tokens}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Identifier)
	if err == mongo.ErrNoDocuments {
		user, err = s.users.FindByEmail(ctx, strings.ToLower(req.Identifier))
	}
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Security(logger.EventLoginFailure, "Login failed", logger.Fields(
			"identifier", req.Identifier,
		))
		return nil, apperr.New(apperr.Unauthenticated, "invalid credentials")
	}

	tokens, err := s.issueSession(ctx, user.ID.Hex(), user.Role, req.Device)
	if err != nil {
		return nil, err
	}

	logger.Security(logger.EventLoginSuccess, "User logged in", logger.Fields(
		"user_id", user.ID.Hex(),
		"device", req.Device,
	))

	return &dto.AuthResponse{UserID: user.ID.Hex(), Role: string(user.Role), Tokens: *tokens}, nil
}

// RefreshToken validates the session in two steps: the token must belong to
// the user at all, then the matching session must be bound to this device.
// The split keeps "wrong token" distinguishable from "right token, wrong
// device" in diagnostics.
func (s *authService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := parseID(claims.SubjectID, "subject")
	if err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "invalid subject in token")
	}

	session, err := s.sessions.FindByUserAndToken(ctx, userID, req.RefreshToken)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.Unauthenticated, "invalid token")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to look up session", err)
	}
	if session.Device != req.Device {
		return nil, apperr.New(apperr.Unauthenticated, "session expired")
	}

	access, refresh, err := s.tokens.IssuePair(claims.SubjectID, claims.Role)
	if err != nil {
		return nil, err
	}

	// Rotate in place: same session identity, new token.
	if err := s.sessions.UpdateToken(ctx, session.ID, refresh); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to rotate session", err)
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken, device string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	session, err := s.sessions.FindByUserAndDevice(ctx, identity.UserID, device)
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up session", err)
	}

	if err := s.sessions.DeleteByID(ctx, session.ID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to revoke session", err)
	}
	return nil
}

// RequestPasswordReset always reports success so callers cannot probe which
// emails have accounts.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}

	token, err := s.tokens.IssueReset(user.ID.Hex(), user.Role)
	if err != nil {
		return err
	}

	if err := s.email.SendPasswordResetEmail(user.Email, user.Username, token); err != nil {
		logger.Error(logger.EventGeneral, "Failed to send password reset email", logger.Fields(
			"user_id", user.ID.Hex(),
			"error", err.Error(),
		))
		return apperr.Wrap(apperr.Internal, "failed to send reset email", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.VerifyReset(token)
	if err != nil {
		return err
	}

	userID, err := parseID(claims.SubjectID, "subject")
	if err != nil {
		return apperr.New(apperr.Unauthenticated, "invalid subject in token")
	}

	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return apperr.New(apperr.BadInput, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	if err := s.users.UpdateFields(ctx, userID, bson.M{"password": string(hashed)}); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.New(apperr.NotFound, "user not found")
		}
		return apperr.Wrap(apperr.Internal, "failed to update password", err)
	}

	// A password reset invalidates every live session for the user.
	if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to revoke sessions", err)
	}
	return nil
}

// issueSession issues a token pair and records the refresh token as a new
// session for the device. Creation is unconditional: an existing session for
// the same (user, device) pair is not looked up first.
func (s *authService) issueSession(ctx context.Context, userID string, role domain.Role, device string) (*dto.TokenPair, error) {
	access, refresh, err := s.tokens.IssuePair(userID, role)
	if err != nil {
		return nil, err
	}

	uid, err := parseID(userID, "user id")
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		UserID: uid,
		Device: device,
		Token:  refresh,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to create session", err)
	}

	return &dto.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
