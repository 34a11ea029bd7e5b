package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/logger"
	"github.com/Sanket4450/SonicBox-sub000/repository"
)

type UserService interface {
	GetUsers(ctx context.Context, page *dto.PageRequest) ([]dto.UserView, error)
	GetArtists(ctx context.Context, page *dto.PageRequest) ([]dto.UserView, error)
	GetUser(ctx context.Context, accessToken, userID string) (*dto.UserView, error)
	GetProfile(ctx context.Context, accessToken string) (*dto.UserView, error)
	UpdateProfile(ctx context.Context, accessToken string, req *dto.UpdateProfileRequest) error
	DeleteUser(ctx context.Context, accessToken string) error
	FollowUser(ctx context.Context, accessToken, userID string) error
	UnfollowUser(ctx context.Context, accessToken, userID string) error
	GetFollowers(ctx context.Context, accessToken string, page *dto.PageRequest) ([]dto.ArtistRef, error)
	GetFollowing(ctx context.Context, accessToken string, page *dto.PageRequest) ([]dto.ArtistRef, error)
}

type userService struct {
	guards    *guards
	users     repository.UserRepository
	sessions  repository.SessionRepository
	followers repository.FollowerRepository
	libraries repository.LibraryRepository
	playlists repository.PlaylistRepository
}

func NewUserService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	followers repository.FollowerRepository,
	libraries repository.LibraryRepository,
	playlists repository.PlaylistRepository,
	tokens *auth.Manager,
) UserService {
	return &userService{
		guards:    &guards{tokens: tokens, users: users},
		users:     users,
		sessions:  sessions,
		followers: followers,
		libraries: libraries,
		playlists: playlists,
	}
}

func (s *userService) GetUsers(ctx context.Context, page *dto.PageRequest) ([]dto.UserView, error) {
	users, err := s.users.SearchUsers(ctx, page.Keyword, page.Page, page.Limit, false)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch users", err)
	}
	return users, nil
}

func (s *userService) GetArtists(ctx context.Context, page *dto.PageRequest) ([]dto.UserView, error) {
	artists, err := s.users.SearchUsers(ctx, page.Keyword, page.Page, page.Limit, true)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch artists", err)
	}
	return artists, nil
}

func (s *userService) GetUser(ctx context.Context, accessToken, userID string) (*dto.UserView, error) {
	if _, err := s.guards.ResolveIdentity(ctx, accessToken); err != nil {
		return nil, err
	}

	id, err := parseID(userID, "user id")
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserProfile(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch user", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, accessToken string) (*dto.UserView, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserProfile(ctx, identity.UserID)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch profile", err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, accessToken string, req *dto.UpdateProfileRequest) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	fields := bson.M{}
	if req.Username != nil {
		taken, err := s.users.ExistsByUsername(ctx, *req.Username, identity.UserID)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to check username", err)
		}
		if taken {
			return apperr.New(apperr.Conflict, "username already taken")
		}
		fields["username"] = *req.Username
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.DateOfBirth != nil {
		fields["dateOfBirth"] = *req.DateOfBirth
	}
	if req.State != nil {
		fields["state"] = *req.State
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.ProfilePicture != nil {
		fields["profilePicture"] = *req.ProfilePicture
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if err := s.users.UpdateFields(ctx, identity.UserID, fields); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update profile", err)
	}
	return nil
}

// DeleteUser removes the account and cascades to everything hanging off it:
// sessions, the user record, follow edges on either side, the library, and
// owned playlists. The cascade is sequential and best-effort; there is no
// cross-collection transaction, so a failure partway leaves the earlier steps
// committed.
func (s *userService) DeleteUser(ctx context.Context, accessToken string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	// Artist and admin accounts cannot self-delete.
	if identity.Role != domain.RoleUser {
		return apperr.New(apperr.Forbidden, "artist and admin accounts cannot be deleted")
	}

	if err := s.sessions.DeleteByUser(ctx, identity.UserID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete sessions", err)
	}
	if err := s.users.Delete(ctx, identity.UserID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete user", err)
	}
	if err := s.followers.DeleteAllForUser(ctx, identity.UserID); err != nil {
		logger.Error(logger.EventCascadeFailure, "Failed to delete follow edges", logger.Fields(
			"user_id", identity.UserID.Hex(),
			"error", err.Error(),
		))
	}
	if err := s.libraries.DeleteByUser(ctx, identity.UserID); err != nil {
		logger.Error(logger.EventCascadeFailure, "Failed to delete library", logger.Fields(
			"user_id", identity.UserID.Hex(),
			"error", err.Error(),
		))
	}
	if err := s.playlists.DeleteAllForUser(ctx, identity.UserID); err != nil {
		logger.Error(logger.EventCascadeFailure, "Failed to delete playlists", logger.Fields(
			"user_id", identity.UserID.Hex(),
			"error", err.Error(),
		))
	}

	logger.Info(logger.EventGeneral, "User account deleted", logger.Fields(
		"user_id", identity.UserID.Hex(),
	))
	return nil
}

// FollowUser is idempotent: following someone already followed is a no-op.
// Under concurrent requests both callers can pass the existence check; the
// second insert produces a second edge read back as one by the existence
// check, so the read path treats the pair as a set.
func (s *userService) FollowUser(ctx context.Context, accessToken, userID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	targetID, err := parseID(userID, "user id")
	if err != nil {
		return err
	}

	if targetID == identity.UserID {
		return apperr.New(apperr.Conflict, "cannot follow yourself")
	}

	ok, err := s.users.ExistsByID(ctx, targetID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up user", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}

	already, err := s.followers.Exists(ctx, targetID, identity.UserID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check follow edge", err)
	}
	if already {
		return nil
	}

	edge := &domain.Follower{UserID: targetID, FollowerID: identity.UserID}
	if err := s.followers.Create(ctx, edge); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to create follow edge", err)
	}
	return nil
}

// UnfollowUser is idempotent: removing a non-existent edge is a no-op.
func (s *userService) UnfollowUser(ctx context.Context, accessToken, userID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	targetID, err := parseID(userID, "user id")
	if err != nil {
		return err
	}

	if err := s.followers.Delete(ctx, targetID, identity.UserID); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete follow edge", err)
	}
	return nil
}

func (s *userService) GetFollowers(ctx context.Context, accessToken string, page *dto.PageRequest) ([]dto.ArtistRef, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	followers, err := s.followers.GetFollowers(ctx, identity.UserID, page.Page, page.Limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch followers", err)
	}
	return followers, nil
}

func (s *userService) GetFollowing(ctx context.Context, accessToken string, page *dto.PageRequest) ([]dto.ArtistRef, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	following, err := s.followers.GetFollowing(ctx, identity.UserID, page.Page, page.Limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch following", err)
	}
	return following, nil
}
