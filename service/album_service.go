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

type AlbumService interface {
	CreateAlbum(ctx context.Context, accessToken string, req *dto.CreateAlbumRequest) (string, error)
	UpdateAlbum(ctx context.Context, accessToken, albumID string, req *dto.UpdateAlbumRequest) error
	DeleteAlbum(ctx context.Context, accessToken, albumID string) error
	GetAlbums(ctx context.Context, page *dto.PageRequest) ([]dto.AlbumView, error)
	GetAlbum(ctx context.Context, albumID string) (*dto.AlbumView, error)
	IncrementListens(ctx context.Context, albumID string) error
}

type albumService struct {
	guards    *guards
	albums    repository.AlbumRepository
	songs     repository.SongRepository
	libraries repository.LibraryRepository
}

func NewAlbumService(
	users repository.UserRepository,
	albums repository.AlbumRepository,
	songs repository.SongRepository,
	libraries repository.LibraryRepository,
	tokens *auth.Manager,
) AlbumService {
	return &albumService{
		guards:    &guards{tokens: tokens, users: users},
		albums:    albums,
		songs:     songs,
		libraries: libraries,
	}
}

func (s *albumService) CreateAlbum(ctx context.Context, accessToken string, req *dto.CreateAlbumRequest) (string, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return "", err
	}
	if err := s.guards.RequireRole(identity, domain.RoleArtist); err != nil {
		return "", err
	}

	taken, err := s.albums.ExistsByNameForArtist(ctx, req.Name, identity.UserID, primitive.NilObjectID)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to check album name", err)
	}
	if taken {
		return "", apperr.New(apperr.Conflict, "album with this name already exists")
	}

	album := &domain.Album{
		Name:     req.Name,
		ArtistID: identity.UserID,
		Image:    req.Image,
	}
	id, err := s.albums.Create(ctx, album)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to create album", err)
	}
	return id.Hex(), nil
}

func (s *albumService) UpdateAlbum(ctx context.Context, accessToken, albumID string, req *dto.UpdateAlbumRequest) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.guards.RequireRole(identity, domain.RoleArtist); err != nil {
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

	owned, err := s.albums.ExistsByIDAndArtist(ctx, id, identity.UserID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check album ownership", err)
	}
	if !owned {
		return apperr.New(apperr.Forbidden, "album does not belong to you")
	}

	fields := bson.M{}
	if req.Name != nil {
		taken, err := s.albums.ExistsByNameForArtist(ctx, *req.Name, identity.UserID, id)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to check album name", err)
		}
		if taken {
			return apperr.New(apperr.Conflict, "album with this name already exists")
		}
		fields["name"] = *req.Name
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}

	if err := s.albums.UpdateFields(ctx, id, fields); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update album", err)
	}
	return nil
}

// DeleteAlbum requires the album to own zero songs. After removal the album
// id is scrubbed from every library asynchronously; that cleanup is best
// effort and only logged on failure.
func (s *albumService) DeleteAlbum(ctx context.Context, accessToken, albumID string) error {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.guards.RequireRole(identity, domain.RoleArtist); err != nil {
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

	owned, err := s.albums.ExistsByIDAndArtist(ctx, id, identity.UserID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check album ownership", err)
	}
	if !owned {
		return apperr.New(apperr.Forbidden, "album does not belong to you")
	}

	count, err := s.songs.CountByAlbum(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to count album songs", err)
	}
	if count > 0 {
		return apperr.New(apperr.Conflict, "album still has songs")
	}

	if err := s.albums.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete album", err)
	}

	go func() {
		ctx := context.Background()
		if err := s.libraries.PullAlbumFromAll(ctx, id); err != nil {
			logger.Error(logger.EventCascadeFailure, "Failed to scrub album from libraries", logger.Fields(
				"album_id", id.Hex(),
				"error", err.Error(),
			))
		}
	}()

	return nil
}

func (s *albumService) GetAlbums(ctx context.Context, page *dto.PageRequest) ([]dto.AlbumView, error) {
	albums, err := s.albums.SearchAlbums(ctx, page.Keyword, page.Page, page.Limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch albums", err)
	}
	return albums, nil
}

func (s *albumService) GetAlbum(ctx context.Context, albumID string) (*dto.AlbumView, error) {
	id, err := parseID(albumID, "album id")
	if err != nil {
		return nil, err
	}

	album, err := s.albums.GetAlbum(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "album not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch album", err)
	}
	return album, nil
}

func (s *albumService) IncrementListens(ctx context.Context, albumID string) error {
	id, err := parseID(albumID, "album id")
	if err != nil {
		return err
	}
	if err := s.albums.IncrementListens(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update listens", err)
	}
	return nil
}
