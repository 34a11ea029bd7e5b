package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/logger"
	"github.com/Sanket4450/SonicBox-sub000/repository"
)

// defaultPlaylistImage is used when a playlist is created without one.
const defaultPlaylistImage = "https://static.sonicbox.app/images/playlist-default.png"

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, accessToken string, req *dto.CreatePlaylistRequest) (string, error)
	UpdatePlaylist(ctx context.Context, accessToken, playlistID string, req *dto.UpdatePlaylistRequest) error
	AddSong(ctx context.Context, accessToken, playlistID, songID string) error
	RemoveSong(ctx context.Context, accessToken, playlistID, songID string) error
	DeletePlaylist(ctx context.Context, accessToken, playlistID string) error
	GetPlaylists(ctx context.Context, accessToken string, page *dto.PageRequest) ([]dto.PlaylistView, error)
	GetPlaylist(ctx context.Context, accessToken, playlistID string) (*dto.PlaylistView, error)
	IncrementListens(ctx context.Context, playlistID string) error
}

type playlistService struct {
	guards     *guards
	playlists  repository.PlaylistRepository
	songs      repository.SongRepository
	categories repository.CategoryRepository
	libraries  repository.LibraryRepository
}

func NewPlaylistService(
	users repository.UserRepository,
	playlists repository.PlaylistRepository,
	songs repository.SongRepository,
	categories repository.CategoryRepository,
	libraries repository.LibraryRepository,
	tokens *auth.Manager,
) PlaylistService {
	return &playlistService{
		guards:     &guards{tokens: tokens, users: users},
		playlists:  playlists,
		songs:      songs,
		categories: categories,
		libraries:  libraries,
	}
}

func (s *playlistService) CreatePlaylist(ctx context.Context, accessToken string, req *dto.CreatePlaylistRequest) (string, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return "", err
	}

	taken, err := s.playlists.ExistsByNameForOwner(ctx, req.Name, identity.UserID, primitive.NilObjectID)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to check playlist name", err)
	}
	if taken {
		return "", apperr.New(apperr.Conflict, "playlist with this name already exists")
	}

	image := req.Image
	if image == "" {
		image = defaultPlaylistImage
	}

	playlist := &domain.Playlist{
		UserID:    identity.UserID,
		Name:      req.Name,
		Image:     image,
		IsPrivate: req.IsPrivate,
	}
	id, err := s.playlists.Create(ctx, playlist)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to create playlist", err)
	}
	return id.Hex(), nil
}

func (s *playlistService) UpdatePlaylist(ctx context.Context, accessToken, playlistID string, req *dto.UpdatePlaylistRequest) error {
	identity, id, err := s.resolveOwned(ctx, accessToken, playlistID)
	if err != nil {
		return err
	}

	fields := bson.M{}
	if req.Name != nil {
		taken, err := s.playlists.ExistsByNameForOwner(ctx, *req.Name, identity.UserID, id)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to check playlist name", err)
		}
		if taken {
			return apperr.New(apperr.Conflict, "playlist with this name already exists")
		}
		fields["name"] = *req.Name
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.IsPrivate != nil {
		fields["isPrivate"] = *req.IsPrivate
	}

	if err := s.playlists.UpdateFields(ctx, id, fields); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update playlist", err)
	}
	return nil
}

func (s *playlistService) AddSong(ctx context.Context, accessToken, playlistID, songID string) error {
	_, id, err := s.resolveOwned(ctx, accessToken, playlistID)
	if err != nil {
		return err
	}

	sid, err := parseID(songID, "song id")
	if err != nil {
		return err
	}

	ok, err := s.songs.ExistsByID(ctx, sid)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up song", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "song not found")
	}

	// Push-if-absent is the duplicate guard; adding twice is a no-op.
	if err := s.playlists.AddSong(ctx, id, sid); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to add song", err)
	}
	return nil
}

func (s *playlistService) RemoveSong(ctx context.Context, accessToken, playlistID, songID string) error {
	_, id, err := s.resolveOwned(ctx, accessToken, playlistID)
	if err != nil {
		return err
	}

	sid, err := parseID(songID, "song id")
	if err != nil {
		return err
	}

	if err := s.playlists.RemoveSong(ctx, id, sid); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove song", err)
	}
	return nil
}

// DeletePlaylist removes the playlist and scrubs its id out of category and
// library membership sets, best effort.
func (s *playlistService) DeletePlaylist(ctx context.Context, accessToken, playlistID string) error {
	_, id, err := s.resolveOwned(ctx, accessToken, playlistID)
	if err != nil {
		return err
	}

	if err := s.playlists.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete playlist", err)
	}

	// Best-effort scrubs: a failure leaves stale references, the playlist
	// itself is already gone.
	if err := s.categories.PullPlaylistFromAll(ctx, id); err != nil {
		logger.Error(logger.EventCascadeFailure, "Failed to scrub playlist from categories", logger.Fields(
			"playlist_id", id.Hex(),
			"error", err.Error(),
		))
	}
	if err := s.libraries.PullPlaylistFromAll(ctx, id); err != nil {
		logger.Error(logger.EventCascadeFailure, "Failed to scrub playlist from libraries", logger.Fields(
			"playlist_id", id.Hex(),
			"error", err.Error(),
		))
	}

	return nil
}

func (s *playlistService) GetPlaylists(ctx context.Context, accessToken string, page *dto.PageRequest) ([]dto.PlaylistView, error) {
	viewerID := primitive.NilObjectID
	if accessToken != "" {
		identity, err := s.guards.ResolveIdentity(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		viewerID = identity.UserID
	}

	playlists, err := s.playlists.SearchPlaylists(ctx, page.Keyword, page.Page, page.Limit, viewerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch playlists", err)
	}
	return playlists, nil
}

func (s *playlistService) GetPlaylist(ctx context.Context, accessToken, playlistID string) (*dto.PlaylistView, error) {
	id, err := parseID(playlistID, "playlist id")
	if err != nil {
		return nil, err
	}

	playlist, err := s.playlists.GetPlaylist(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "playlist not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch playlist", err)
	}

	// Private playlists are visible only to their owner.
	if playlist.IsPrivate {
		identity, err := s.guards.ResolveIdentity(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		owned, err := s.playlists.ExistsByIDAndOwner(ctx, id, identity.UserID)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to check playlist ownership", err)
		}
		if !owned {
			return nil, apperr.New(apperr.Forbidden, "playlist is private")
		}
	}

	return playlist, nil
}

func (s *playlistService) IncrementListens(ctx context.Context, playlistID string) error {
	id, err := parseID(playlistID, "playlist id")
	if err != nil {
		return err
	}
	if err := s.playlists.IncrementListens(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update listens", err)
	}
	return nil
}

// resolveOwned runs the shared guard prefix for playlist mutations: identity,
// playlist existence, then ownership.
func (s *playlistService) resolveOwned(ctx context.Context, accessToken, playlistID string) (*Identity, primitive.ObjectID, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}

	id, err := parseID(playlistID, "playlist id")
	if err != nil {
		return nil, primitive.NilObjectID, err
	}

	ok, err := s.playlists.ExistsByID(ctx, id)
	if err != nil {
		return nil, primitive.NilObjectID, apperr.Wrap(apperr.Internal, "failed to look up playlist", err)
	}
	if !ok {
		return nil, primitive.NilObjectID, apperr.New(apperr.NotFound, "playlist not found")
	}

	owned, err := s.playlists.ExistsByIDAndOwner(ctx, id, identity.UserID)
	if err != nil {
		return nil, primitive.NilObjectID, apperr.Wrap(apperr.Internal, "failed to check playlist ownership", err)
	}
	if !owned {
		return nil, primitive.NilObjectID, apperr.New(apperr.Forbidden, "playlist does not belong to you")
	}

	return identity, id, nil
}
