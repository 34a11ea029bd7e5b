package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/repository"
)

func newTestTokens() *auth.Manager {
	return auth.NewManager(auth.ManagerConfig{
		AccessSecret:  "test-access",
		AccessExpiry:  time.Minute,
		RefreshSecret: "test-refresh",
		RefreshExpiry: time.Hour,
		ResetSecret:   "test-reset",
		ResetExpiry:   time.Minute,
	})
}

func accessTokenFor(t *testing.T, tokens *auth.Manager, id primitive.ObjectID, role domain.Role) string {
	t.Helper()
	token, err := tokens.IssueAccess(id.Hex(), role)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	return token
}

type mockUserRepo struct {
	CreateID              primitive.ObjectID
	CreateErr             error
	FindByIDResp          *domain.User
	FindByIDErr           error
	FindByEmailResp       *domain.User
	FindByEmailErr        error
	FindByUsernameResp    *domain.User
	FindByUsernameErr     error
	ExistsByIDResp        bool
	ExistsByIDAndRoleResp bool
	ExistsByUsernameResp  bool
	ExistsByEmailResp     bool
	UpdateFieldsErr       error
	UpdatedFields         bson.M
	DeleteErr             error
	DeletedID             primitive.ObjectID
	SearchUsersResp       []dto.UserView
	GetUserProfileResp    *dto.UserView
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return m.CreateID, m.CreateErr
}
func (m *mockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}
	if m.FindByIDResp != nil {
		return m.FindByIDResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailErr != nil {
		return nil, m.FindByEmailErr
	}
	if m.FindByEmailResp != nil {
		return m.FindByEmailResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameErr != nil {
		return nil, m.FindByUsernameErr
	}
	if m.FindByUsernameResp != nil {
		return m.FindByUsernameResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockUserRepo) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.ExistsByIDResp, nil
}
func (m *mockUserRepo) ExistsByIDAndRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (bool, error) {
	return m.ExistsByIDAndRoleResp, nil
}
func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string, exclude primitive.ObjectID) (bool, error) {
	return m.ExistsByUsernameResp, nil
}
func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.ExistsByEmailResp, nil
}
func (m *mockUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	m.UpdatedFields = fields
	return m.UpdateFieldsErr
}
func (m *mockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.DeletedID = id
	return m.DeleteErr
}
func (m *mockUserRepo) SearchUsers(ctx context.Context, keyword string, page, limit int64, artistsOnly bool) ([]dto.UserView, error) {
	return m.SearchUsersResp, nil
}
func (m *mockUserRepo) GetUserProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserView, error) {
	if m.GetUserProfileResp != nil {
		return m.GetUserProfileResp, nil
	}
	return nil, mongo.ErrNoDocuments
}

type mockSessionRepo struct {
	CreateErr               error
	Created                 []*domain.Session
	FindByUserAndTokenResp  *domain.Session
	FindByUserAndDeviceResp *domain.Session
	UpdateTokenErr          error
	UpdatedSessionID        primitive.ObjectID
	UpdatedToken            string
	DeletedSessionID        primitive.ObjectID
	DeletedUserID           primitive.ObjectID
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	m.Created = append(m.Created, session)
	return m.CreateErr
}
func (m *mockSessionRepo) FindByUserAndToken(ctx context.Context, userID primitive.ObjectID, token string) (*domain.Session, error) {
	if m.FindByUserAndTokenResp != nil {
		return m.FindByUserAndTokenResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockSessionRepo) FindByUserAndDevice(ctx context.Context, userID primitive.ObjectID, device string) (*domain.Session, error) {
	if m.FindByUserAndDeviceResp != nil {
		return m.FindByUserAndDeviceResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockSessionRepo) UpdateToken(ctx context.Context, id primitive.ObjectID, token string) error {
	m.UpdatedSessionID = id
	m.UpdatedToken = token
	return m.UpdateTokenErr
}
func (m *mockSessionRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	m.DeletedSessionID = id
	return nil
}
func (m *mockSessionRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	m.DeletedUserID = userID
	return nil
}

type mockFollowerRepo struct {
	ExistsResp       bool
	CreateErr        error
	Created          []*domain.Follower
	DeleteCalls      int
	DeleteAllErr     error
	GetFollowersResp []dto.ArtistRef
	GetFollowingResp []dto.ArtistRef
}

func (m *mockFollowerRepo) Exists(ctx context.Context, userID, followerID primitive.ObjectID) (bool, error) {
	return m.ExistsResp, nil
}
func (m *mockFollowerRepo) Create(ctx context.Context, edge *domain.Follower) error {
	m.Created = append(m.Created, edge)
	return m.CreateErr
}
func (m *mockFollowerRepo) Delete(ctx context.Context, userID, followerID primitive.ObjectID) error {
	m.DeleteCalls++
	return nil
}
func (m *mockFollowerRepo) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	return m.DeleteAllErr
}
func (m *mockFollowerRepo) GetFollowers(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]dto.ArtistRef, error) {
	return m.GetFollowersResp, nil
}
func (m *mockFollowerRepo) GetFollowing(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]dto.ArtistRef, error) {
	return m.GetFollowingResp, nil
}

type mockAlbumRepo struct {
	CreateID                  primitive.ObjectID
	CreateErr                 error
	ExistsByIDResp            bool
	ExistsByIDAndArtistResp   bool
	ExistsByNameForArtistResp bool
	UpdateFieldsErr           error
	UpdatedFields             bson.M
	DeleteErr                 error
	DeletedID                 primitive.ObjectID
	IncrementCalls            int
	SearchAlbumsResp          []dto.AlbumView
	GetAlbumResp              *dto.AlbumView
}

func (m *mockAlbumRepo) Create(ctx context.Context, album *domain.Album) (primitive.ObjectID, error) {
	return m.CreateID, m.CreateErr
}
func (m *mockAlbumRepo) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.ExistsByIDResp, nil
}
func (m *mockAlbumRepo) ExistsByIDAndArtist(ctx context.Context, id, artistID primitive.ObjectID) (bool, error) {
	return m.ExistsByIDAndArtistResp, nil
}
func (m *mockAlbumRepo) ExistsByNameForArtist(ctx context.Context, name string, artistID, exclude primitive.ObjectID) (bool, error) {
	return m.ExistsByNameForArtistResp, nil
}
func (m *mockAlbumRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	m.UpdatedFields = fields
	return m.UpdateFieldsErr
}
func (m *mockAlbumRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.DeletedID = id
	return m.DeleteErr
}
func (m *mockAlbumRepo) IncrementListens(ctx context.Context, id primitive.ObjectID) error {
	m.IncrementCalls++
	return nil
}
func (m *mockAlbumRepo) SearchAlbums(ctx context.Context, keyword string, page, limit int64) ([]dto.AlbumView, error) {
	return m.SearchAlbumsResp, nil
}
func (m *mockAlbumRepo) GetAlbum(ctx context.Context, id primitive.ObjectID) (*dto.AlbumView, error) {
	if m.GetAlbumResp != nil {
		return m.GetAlbumResp, nil
	}
	return nil, mongo.ErrNoDocuments
}

type mockSongRepo struct {
	CreateID                 primitive.ObjectID
	CreateErr                error
	CreatedSong              *domain.Song
	FindByIDResp             *domain.Song
	ExistsByIDResp           bool
	ExistsByIDAndArtistResp  bool
	ExistsByAlbumAndFileResp bool
	CountByAlbumResp         int64
	UpdateFieldsErr          error
	AddArtistCalls           int
	RemovedArtistID          primitive.ObjectID
	DeleteErr                error
	DeletedID                primitive.ObjectID
	IncrementCalls           int
	SearchSongsResp          []dto.SongView
	GetSongResp              *dto.SongView
}

func (m *mockSongRepo) Create(ctx context.Context, song *domain.Song) (primitive.ObjectID, error) {
	m.CreatedSong = song
	return m.CreateID, m.CreateErr
}
func (m *mockSongRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Song, error) {
	if m.FindByIDResp != nil {
		return m.FindByIDResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockSongRepo) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.ExistsByIDResp, nil
}
func (m *mockSongRepo) ExistsByIDAndArtist(ctx context.Context, id, artistID primitive.ObjectID) (bool, error) {
	return m.ExistsByIDAndArtistResp, nil
}
func (m *mockSongRepo) ExistsByAlbumAndFileURL(ctx context.Context, albumID primitive.ObjectID, fileURL string) (bool, error) {
	return m.ExistsByAlbumAndFileResp, nil
}
func (m *mockSongRepo) CountByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error) {
	return m.CountByAlbumResp, nil
}
func (m *mockSongRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return m.UpdateFieldsErr
}
func (m *mockSongRepo) AddArtist(ctx context.Context, id, artistID primitive.ObjectID) error {
	m.AddArtistCalls++
	return nil
}
func (m *mockSongRepo) RemoveArtist(ctx context.Context, id, artistID primitive.ObjectID) error {
	m.RemovedArtistID = artistID
	return nil
}
func (m *mockSongRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.DeletedID = id
	return m.DeleteErr
}
func (m *mockSongRepo) IncrementListens(ctx context.Context, id primitive.ObjectID) error {
	m.IncrementCalls++
	return nil
}
func (m *mockSongRepo) SearchSongs(ctx context.Context, keyword string, page, limit int64) ([]dto.SongView, error) {
	return m.SearchSongsResp, nil
}
func (m *mockSongRepo) GetSong(ctx context.Context, id primitive.ObjectID) (*dto.SongView, error) {
	if m.GetSongResp != nil {
		return m.GetSongResp, nil
	}
	return nil, mongo.ErrNoDocuments
}

type mockPlaylistRepo struct {
	CreateID                 primitive.ObjectID
	CreateErr                error
	FindByIDResp             *domain.Playlist
	ExistsByIDResp           bool
	ExistsByIDAndOwnerResp   bool
	ExistsByNameForOwnerResp bool
	IsPrivateResp            bool
	IsPrivateErr             error
	UpdateFieldsErr          error
	AddSongCalls             int
	RemoveSongCalls          int
	DeleteErr                error
	DeletedID                primitive.ObjectID
	DeleteAllCalls           int
	PullSongCalls            int
	IncrementCalls           int
	SearchPlaylistsResp      []dto.PlaylistView
	GetPlaylistResp          *dto.PlaylistView
}

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error) {
	return m.CreateID, m.CreateErr
}
func (m *mockPlaylistRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	if m.FindByIDResp != nil {
		return m.FindByIDResp, nil
	}
	return nil, mongo.ErrNoDocuments
}
func (m *mockPlaylistRepo) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.ExistsByIDResp, nil
}
func (m *mockPlaylistRepo) ExistsByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	return m.ExistsByIDAndOwnerResp, nil
}
func (m *mockPlaylistRepo) ExistsByNameForOwner(ctx context.Context, name string, ownerID, exclude primitive.ObjectID) (bool, error) {
	return m.ExistsByNameForOwnerResp, nil
}
func (m *mockPlaylistRepo) IsPrivate(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if m.IsPrivateErr != nil {
		return false, m.IsPrivateErr
	}
	if !m.ExistsByIDResp {
		return false, mongo.ErrNoDocuments
	}
	return m.IsPrivateResp, nil
}
func (m *mockPlaylistRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return m.UpdateFieldsErr
}
func (m *mockPlaylistRepo) AddSong(ctx context.Context, id, songID primitive.ObjectID) error {
	m.AddSongCalls++
	return nil
}
func (m *mockPlaylistRepo) RemoveSong(ctx context.Context, id, songID primitive.ObjectID) error {
	m.RemoveSongCalls++
	return nil
}
func (m *mockPlaylistRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.DeletedID = id
	return m.DeleteErr
}
func (m *mockPlaylistRepo) DeleteAllForUser(ctx context.Context, ownerID primitive.ObjectID) error {
	m.DeleteAllCalls++
	return nil
}
func (m *mockPlaylistRepo) PullSongFromAll(ctx context.Context, songID primitive.ObjectID) error {
	m.PullSongCalls++
	return nil
}
func (m *mockPlaylistRepo) IncrementListens(ctx context.Context, id primitive.ObjectID) error {
	m.IncrementCalls++
	return nil
}
func (m *mockPlaylistRepo) SearchPlaylists(ctx context.Context, keyword string, page, limit int64, viewerID primitive.ObjectID) ([]dto.PlaylistView, error) {
	return m.SearchPlaylistsResp, nil
}
func (m *mockPlaylistRepo) GetPlaylist(ctx context.Context, id primitive.ObjectID) (*dto.PlaylistView, error) {
	if m.GetPlaylistResp != nil {
		return m.GetPlaylistResp, nil
	}
	return nil, mongo.ErrNoDocuments
}

type mockCategoryRepo struct {
	CreateID            primitive.ObjectID
	CreateErr           error
	ExistsByIDResp      bool
	ExistsByNameResp    bool
	UpdateFieldsErr     error
	AddPlaylistCalls    int
	RemovePlaylistCalls int
	DeleteErr           error
	DeletedID           primitive.ObjectID
	PullPlaylistCalls   int
	SearchResp          []dto.CategoryView
	GetResp             *dto.CategoryView
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	return m.CreateID, m.CreateErr
}
func (m *mockCategoryRepo) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return m.ExistsByIDResp, nil
}
func (m *mockCategoryRepo) ExistsByName(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	return m.ExistsByNameResp, nil
}
func (m *mockCategoryRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	return m.UpdateFieldsErr
}
func (m *mockCategoryRepo) AddPlaylist(ctx context.Context, id, playlistID primitive.ObjectID) error {
	m.AddPlaylistCalls++
	return nil
}
func (m *mockCategoryRepo) RemovePlaylist(ctx context.Context, id, playlistID primitive.ObjectID) error {
	m.RemovePlaylistCalls++
	return nil
}
func (m *mockCategoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.DeletedID = id
	return m.DeleteErr
}
func (m *mockCategoryRepo) PullPlaylistFromAll(ctx context.Context, playlistID primitive.ObjectID) error {
	m.PullPlaylistCalls++
	return nil
}
func (m *mockCategoryRepo) SearchCategories(ctx context.Context, keyword string, page, limit int64) ([]dto.CategoryView, error) {
	return m.SearchResp, nil
}
func (m *mockCategoryRepo) GetCategory(ctx context.Context, id primitive.ObjectID) (*dto.CategoryView, error) {
	if m.GetResp != nil {
		return m.GetResp, nil
	}
	return nil, mongo.ErrNoDocuments
}

type libraryItem struct {
	Field  repository.LibraryField
	ItemID primitive.ObjectID
}

type mockLibraryRepo struct {
	CreateErr       error
	Created         []*domain.Library
	AddItemErr      error
	Added           []libraryItem
	RemoveItemErr   error
	Removed         []libraryItem
	DeleteByUserErr error
	PullAlbumCalls  int
	PullPlistCalls  int
	GetLibraryResp  *dto.LibraryView
}

func (m *mockLibraryRepo) Create(ctx context.Context, library *domain.Library) error {
	m.Created = append(m.Created, library)
	return m.CreateErr
}
func (m *mockLibraryRepo) AddItem(ctx context.Context, userID primitive.ObjectID, field repository.LibraryField, itemID primitive.ObjectID) error {
	if m.AddItemErr != nil {
		return m.AddItemErr
	}
	m.Added = append(m.Added, libraryItem{Field: field, ItemID: itemID})
	return nil
}
func (m *mockLibraryRepo) RemoveItem(ctx context.Context, userID primitive.ObjectID, field repository.LibraryField, itemID primitive.ObjectID) error {
	if m.RemoveItemErr != nil {
		return m.RemoveItemErr
	}
	m.Removed = append(m.Removed, libraryItem{Field: field, ItemID: itemID})
	return nil
}
func (m *mockLibraryRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	return m.DeleteByUserErr
}
func (m *mockLibraryRepo) PullAlbumFromAll(ctx context.Context, albumID primitive.ObjectID) error {
	m.PullAlbumCalls++
	return nil
}
func (m *mockLibraryRepo) PullPlaylistFromAll(ctx context.Context, playlistID primitive.ObjectID) error {
	m.PullPlistCalls++
	return nil
}
func (m *mockLibraryRepo) GetLibrary(ctx context.Context, userID primitive.ObjectID) (*dto.LibraryView, error) {
	if m.GetLibraryResp != nil {
		return m.GetLibraryResp, nil
	}
	return nil, mongo.ErrNoDocuments
}

type mockEmail struct {
	SendErr   error
	SentTo    string
	SentToken string
}

func (m *mockEmail) SendPasswordResetEmail(to, username, token string) error {
	m.SentTo = to
	m.SentToken = token
	return m.SendErr
}
