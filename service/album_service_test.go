package service

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
)

func TestCreateAlbumRequiresArtistRole(t *testing.T) {
	tokens := newTestTokens()
	users := &mockUserRepo{ExistsByIDResp: true}
	svc := NewAlbumService(users, &mockAlbumRepo{}, &mockSongRepo{}, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleUser)
	_, err := svc.CreateAlbum(context.Background(), token, &dto.CreateAlbumRequest{Name: "First"})
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for non-artist, got %v", err)
	}
}

func TestCreateAlbumDuplicateName(t *testing.T) {
	tokens := newTestTokens()
	users := &mockUserRepo{ExistsByIDResp: true}
	albums := &mockAlbumRepo{ExistsByNameForArtistResp: true}
	svc := NewAlbumService(users, albums, &mockSongRepo{}, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleArtist)
	_, err := svc.CreateAlbum(context.Background(), token, &dto.CreateAlbumRequest{Name: "First"})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("expected Conflict for duplicate name, got %v", err)
	}
}

func TestCreateAlbumReturnsID(t *testing.T) {
	tokens := newTestTokens()
	albumID := primitive.NewObjectID()
	users := &mockUserRepo{ExistsByIDResp: true}
	albums := &mockAlbumRepo{CreateID: albumID}
	svc := NewAlbumService(users, albums, &mockSongRepo{}, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleArtist)
	id, err := svc.CreateAlbum(context.Background(), token, &dto.CreateAlbumRequest{Name: "First"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != albumID.Hex() {
		t.Fatalf("expected id %s, got %s", albumID.Hex(), id)
	}
}

func TestUpdateAlbumNotOwned(t *testing.T) {
	tokens := newTestTokens()
	users := &mockUserRepo{ExistsByIDResp: true}
	albums := &mockAlbumRepo{ExistsByIDResp: true, ExistsByIDAndArtistResp: false}
	svc := NewAlbumService(users, albums, &mockSongRepo{}, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleArtist)
	name := "Renamed"
	err := svc.UpdateAlbum(context.Background(), token, primitive.NewObjectID().Hex(), &dto.UpdateAlbumRequest{Name: &name})
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden for someone else's album, got %v", err)
	}
}

func TestUpdateAlbumUnknownID(t *testing.T) {
	tokens := newTestTokens()
	users := &mockUserRepo{ExistsByIDResp: true}
	albums := &mockAlbumRepo{ExistsByIDResp: false}
	svc := NewAlbumService(users, albums, &mockSongRepo{}, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleArtist)
	err := svc.UpdateAlbum(context.Background(), token, primitive.NewObjectID().Hex(), &dto.UpdateAlbumRequest{})
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestDeleteAlbumWithSongsConflict(t *testing.T) {
	tokens := newTestTokens()
	users := &mockUserRepo{ExistsByIDResp: true}
	albums := &mockAlbumRepo{ExistsByIDResp: true, ExistsByIDAndArtistResp: true}
	songs := &mockSongRepo{CountByAlbumResp: 3}
	svc := NewAlbumService(users, albums, songs, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleArtist)
	err := svc.DeleteAlbum(context.Background(), token, primitive.NewObjectID().Hex())
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("expected Conflict while songs remain, got %v", err)
	}
	if albums.DeletedID != primitive.NilObjectID {
		t.Fatalf("expected album untouched")
	}
}

func TestDeleteEmptyAlbum(t *testing.T) {
	tokens := newTestTokens()
	albumID := primitive.NewObjectID()
	users := &mockUserRepo{ExistsByIDResp: true}
	albums := &mockAlbumRepo{ExistsByIDResp: true, ExistsByIDAndArtistResp: true}
	svc := NewAlbumService(users, albums, &mockSongRepo{}, &mockLibraryRepo{}, tokens)

	token := accessTokenFor(t, tokens, primitive.NewObjectID(), domain.RoleArtist)
	if err := svc.DeleteAlbum(context.Background(), token, albumID.Hex()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if albums.DeletedID != albumID {
		t.Fatalf("expected album deleted")
	}
}

func TestGetAlbumNotFound(t *testing.T) {
	svc := NewAlbumService(&mockUserRepo{}, &mockAlbumRepo{}, &mockSongRepo{}, &mockLibraryRepo{}, newTestTokens())

	_, err := svc.GetAlbum(context.Background(), primitive.NewObjectID().Hex())
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetAlbumsPassesKeyword(t *testing.T) {
	albums := &mockAlbumRepo{SearchAlbumsResp: []dto.AlbumView{{Name: "Hits"}}}
	svc := NewAlbumService(&mockUserRepo{}, albums, &mockSongRepo{}, &mockLibraryRepo{}, newTestTokens())

	out, err := svc.GetAlbums(context.Background(), &dto.PageRequest{Keyword: "hit"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Hits" {
		t.Fatalf("unexpected result: %+v", out)
	}
}
