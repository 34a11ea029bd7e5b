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

type SongService interface {
	CreateSong(ctx context.Context, accessToken string, req *dto.CreateSongRequest) (string, error)
	UpdateSong(ctx context.Context, accessToken, songID string, req *dto.UpdateSongRequest) error
	DeleteSong(ctx context.Context, accessToken, songID string) error
	GetSongs(ctx context.Context, page *dto.PageRequest) ([]dto.SongView, error)
	GetSong(ctx context.Context, songID string) (*dto.SongView, error)
	IncrementListens(ctx context.Context, songID string) error
}

type songService struct {
	guards    *guards
	users     repository.UserRepository
	albums    repository.AlbumRepository
	songs     repository.SongRepository
	playlists repository.PlaylistRepository
}

func NewSongService(
	users repository.UserRepository,
	albums repository.AlbumRepository,
	songs repository.SongRepository,
	playlists repository.PlaylistRepository,
	tokens *auth.Manager,
) SongService {
	return &songService{
		guards:    &guards{tokens: tokens, users: users},
		users:     users,
		albums:    albums,
		songs:     songs,
		playlists: playlists,
	}
}

func (s *songService) CreateSong(ctx context.Context, accessToken string, req *dto.CreateSongRequest) (string, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return "", err
	}
	if err := s.guards.RequireRole(identity, domain.RoleArtist); err != nil {
		return "", err
	}

	albumID, err := parseID(req.AlbumID, "album id")
	if err != nil {
		return "", err
	}

	ok, err := s.albums.ExistsByID(ctx, albumID)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to look up album", err)
	}
	if !ok {
		return "", apperr.New(apperr.NotFound, "album not found")
	}

	owned, err := s.albums.ExistsByIDAndArtist(ctx, albumID, identity.UserID)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to check album ownership", err)
	}
	if !owned {
		return "", apperr.New(apperr.Forbidden, "album does not belong to you")
	}

	artistIDs, err := s.resolveArtists(ctx, req.Artists, identity.UserID)
	if err != nil {
		return "", err
	}

	// One file per album: the (albumId, fileURL) pair is unique.
	dup, err := s.songs.ExistsByAlbumAndFileURL(ctx, albumID, req.FileURL)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to check song file", err)
	}
	if dup {
		return "", apperr.New(apperr.Conflict, "song with this file already exists in the album")
	}

	song := &domain.Song{
		Name:    req.Name,
		AlbumID: albumID,
		FileURL: req.FileURL,
		Artists: artistIDs,
	}
	id, err := s.songs.Create(ctx, song)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to create song", err)
	}
	return id.Hex(), nil
}

// resolveArtists parses and validates the artist set for a new song. The
// creator must be a member; every member must hold the artist role.
func (s *songService) resolveArtists(ctx context.Context, artists []string, creatorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(artists))
	creatorIncluded := false
	for _, raw := range artists {
		id, err := parseID(raw, "artist id")
		if err != nil {
			return nil, err
		}
		if id == creatorID {
			creatorIncluded = true
		}
		ids = append(ids, id)
	}
	if !creatorIncluded {
		return nil, apperr.New(apperr.Conflict, "song artists must include the creator")
	}

	for _, id := range ids {
		ok, err := s.users.ExistsByIDAndRole(ctx, id, domain.RoleArtist)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "failed to look up artist", err)
		}
		if !ok {
			return nil, apperr.New(apperr.NotFound, "artist not found")
		}
	}
	return ids, nil
}

func (s *songService) UpdateSong(ctx context.Context, accessToken, songID string, req *dto.UpdateSongRequest) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.guards.RequireRole(identity, domain.RoleArtist); err != nil {
		return err
	}

	id, err := parseID(songID, "song id")
	if err != nil {
		return err
	}

	song, err := s.songs.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "song not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up song", err)
	}

	owned, err := s.albums.ExistsByIDAndArtist(ctx, song.AlbumID, identity.UserID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check album ownership", err)
	}
	if !owned {
		return apperr.New(apperr.Forbidden, "song does not belong to you")
	}

	if req.Name != nil {
		if err := s.songs.UpdateFields(ctx, id, bson.M{"name": *req.Name}); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to update song", err)
		}
	}

	if req.AddArtist != nil {
		artistID, err := parseID(*req.AddArtist, "artist id")
		if err != nil {
			return err
		}
		ok, err := s.users.ExistsByIDAndRole(ctx, artistID, domain.RoleArtist)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to look up artist", err)
		}
		if !ok {
			return apperr.New(apperr.NotFound, "artist not found")
		}
		// Push-if-absent; already a member is a no-op.
		if err := s.songs.AddArtist(ctx, id, artistID); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to add artist", err)
		}
	}

	if req.RemoveArtist != nil {
		artistID, err := parseID(*req.RemoveArtist, "artist id")
		if err != nil {
			return err
		}
		// The creator's membership is permanent.
		if artistID == identity.UserID {
			return apperr.New(apperr.Conflict, "cannot remove the song's creator")
		}
		if err := s.songs.RemoveArtist(ctx, id, artistID); err != nil {
			return apperr.Wrap(apperr.Internal, "failed to remove artist", err)
		}
	}

	return nil
}

// DeleteSong removes the song and scrubs it from every playlist referencing
// it; the scrub is best effort.
func (s *songService) DeleteSong(ctx context.Context, accessToken, songID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.guards.RequireRole(identity, domain.RoleArtist); err != nil {
		return err
	}

	id, err := parseID(songID, "song id")
	if err != nil {
		return err
	}

	song, err := s.songs.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "song not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up song", err)
	}

	owned, err := s.albums.ExistsByIDAndArtist(ctx, song.AlbumID, identity.UserID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check album ownership", err)
	}
	if !owned {
		return apperr.New(apperr.Forbidden, "song does not belong to you")
	}

	if err := s.songs.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete song", err)
	}

	// Best-effort scrub: a failure here leaves stale references but the song
	// itself is already gone.
	if err := s.playlists.PullSongFromAll(ctx, id); err != nil {
		logger.Error(logger.EventCascadeFailure, "Failed to scrub song from playlists", logger.Fields(
			"song_id", id.Hex(),
			"error", err.Error(),
		))
	}

	return nil
}

func (s *songService) GetSongs(ctx context.Context, page *dto.PageRequest) ([]dto.SongView, error) {
	songs, err := s.songs.SearchSongs(ctx, page.Keyword, page.Page, page.Limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch songs", err)
	}
	return songs, nil
}

func (s *songService) GetSong(ctx context.Context, songID string) (*dto.SongView, error) {
	id, err := parseID(songID, "song id")
	if err != nil {
		return nil, err
	}

	song, err := s.songs.GetSong(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "song not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch song", err)
	}
	return song, nil
}

func (s *songService) IncrementListens(ctx context.Context, songID string) error {
	id, err := parseID(songID, "song id")
	if err != nil {
		return err
	}
	if err := s.songs.IncrementListens(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update listens", err)
	}
	return nil
}
