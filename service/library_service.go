package service

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/repository"
)

type LibraryService interface {
	GetLibrary(ctx context.Context, accessToken string) (*dto.LibraryView, error)
	AddPlaylist(ctx context.Context, accessToken, playlistID string) error
	RemovePlaylist(ctx context.Context, accessToken, playlistID string) error
	AddArtist(ctx context.Context, accessToken, artistID string) error
	RemoveArtist(ctx context.Context, accessToken, artistID string) error
	AddAlbum(ctx context.Context, accessToken, albumID string) error
	RemoveAlbum(ctx context.Context, accessToken, albumID string) error
}

type libraryService struct {
	guards    *guards
	users     repository.UserRepository
	libraries repository.LibraryRepository
	playlists repository.PlaylistRepository
	albums    repository.AlbumRepository
}

func NewLibraryService(
	users repository.UserRepository,
	libraries repository.LibraryRepository,
	playlists repository.PlaylistRepository,
	albums repository.AlbumRepository,
	tokens *auth.Manager,
) LibraryService {
	return &libraryService{
		guards:    &guards{tokens: tokens, users: users},
		users:     users,
		libraries: libraries,
		playlists: playlists,
		albums:    albums,
	}
}

func (s *libraryService) GetLibrary(ctx context.Context, accessToken string) (*dto.LibraryView, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	library, err := s.libraries.GetLibrary(ctx, identity.UserID)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "library not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch library", err)
	}
	return library, nil
}

// AddPlaylist saves a playlist into the caller's library. Privacy is checked
// at add time only; a playlist later made private stays in the library.
func (s *libraryService) AddPlaylist(ctx context.Context, accessToken, playlistID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	id, err := parseID(playlistID, "playlist id")
	if err != nil {
		return err
	}

	isPrivate, err := s.playlists.IsPrivate(ctx, id)
	if err == mongo.ErrNoDocuments {
		return apperr.New(apperr.NotFound, "playlist not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up playlist", err)
	}
	if isPrivate {
		return apperr.New(apperr.Forbidden, "cannot add a private playlist to the library")
	}

	if err := s.libraries.AddItem(ctx, identity.UserID, repository.LibraryPlaylists, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to add playlist", err)
	}
	return nil
}

func (s *libraryService) RemovePlaylist(ctx context.Context, accessToken, playlistID string) error {
	return s.removeItem(ctx, accessToken, playlistID, "playlist id", repository.LibraryPlaylists)
}

func (s *libraryService) AddArtist(ctx context.Context, accessToken, artistID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	id, err := parseID(artistID, "artist id")
	if err != nil {
		return err
	}

	ok, err := s.users.ExistsByIDAndRole(ctx, id, domain.RoleArtist)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up artist", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "artist not found")
	}

	if err := s.libraries.AddItem(ctx, identity.UserID, repository.LibraryArtists, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to add artist", err)
	}
	return nil
}

func (s *libraryService) RemoveArtist(ctx context.Context, accessToken, artistID string) error {
	return s.removeItem(ctx, accessToken, artistID, "artist id", repository.LibraryArtists)
}

func (s *libraryService) AddAlbum(ctx context.Context, accessToken, albumID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	id, err := parseID(albumID, "album id")
	if err != nil {
		return err
	}

	ok, err := s.albums.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up album", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "album not found")
	}

	if err := s.libraries.AddItem(ctx, identity.UserID, repository.LibraryAlbums, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to add album", err)
	}
	return nil
}

func (s *libraryService) RemoveAlbum(ctx context.Context, accessToken, albumID string) error {
	return s.removeItem(ctx, accessToken, albumID, "album id", repository.LibraryAlbums)
}

// removeItem is idempotent: pulling an absent id is a no-op.
func (s *libraryService) removeItem(ctx context.Context, accessToken, rawID, label string, field repository.LibraryField) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}

	id, err := parseID(rawID, label)
	if err != nil {
		return err
	}

	if err := s.libraries.RemoveItem(ctx, identity.UserID, field, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove item", err)
	}
	return nil
}
