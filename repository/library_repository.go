package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
)

// LibraryField names a membership set inside the library document.
type LibraryField string

const (
	LibraryPlaylists LibraryField = "playlists"
	LibraryArtists   LibraryField = "artists"
	LibraryAlbums    LibraryField = "albums"
)

type LibraryRepository interface {
	Create(ctx context.Context, library *domain.Library) error
	AddItem(ctx context.Context, userID primitive.ObjectID, field LibraryField, itemID primitive.ObjectID) error
	RemoveItem(ctx context.Context, userID primitive.ObjectID, field LibraryField, itemID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	PullAlbumFromAll(ctx context.Context, albumID primitive.ObjectID) error
	PullPlaylistFromAll(ctx context.Context, playlistID primitive.ObjectID) error

	GetLibrary(ctx context.Context, userID primitive.ObjectID) (*dto.LibraryView, error)
}

type libraryRepository struct {
	collection *mongo.Collection
}

func NewLibraryRepository(db *mongo.Database) LibraryRepository {
	collection := db.Collection("libraries")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})

	return &libraryRepository{collection: collection}
}

func (r *libraryRepository) Create(ctx context.Context, library *domain.Library) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, library)
	return err
}

// AddItem pushes only when absent; the filter is the duplicate prevention
// under concurrent adds.
func (r *libraryRepository) AddItem(ctx context.Context, userID primitive.ObjectID, field LibraryField, itemID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, string(field): bson.M{"$ne": itemID}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$push": bson.M{string(field): itemID}})
	return err
}

func (r *libraryRepository) RemoveItem(ctx context.Context, userID primitive.ObjectID, field LibraryField, itemID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$pull": bson.M{string(field): itemID}})
	return err
}

func (r *libraryRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}

func (r *libraryRepository) PullAlbumFromAll(ctx context.Context, albumID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.UpdateMany(ctx, bson.M{"albums": albumID}, bson.M{"$pull": bson.M{"albums": albumID}})
	return err
}

func (r *libraryRepository) PullPlaylistFromAll(ctx context.Context, playlistID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.UpdateMany(ctx, bson.M{"playlists": playlistID}, bson.M{"$pull": bson.M{"playlists": playlistID}})
	return err
}

// GetLibrary joins the library's three membership sets with their source
// collections in one pipeline.
func (r *libraryRepository) GetLibrary(ctx context.Context, userID primitive.ObjectID) (*dto.LibraryView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "userId", Value: userID}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "playlists"},
			{Key: "localField", Value: "playlists"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "playlistDocs"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "artists"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "artistDocs"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "albums"},
			{Key: "localField", Value: "albums"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "albumDocs"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "libraryId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "userId", Value: bson.D{{Key: "$toString", Value: "$userId"}}},
			{Key: "playlists", Value: playlistMap("$playlistDocs")},
			{Key: "artists", Value: artistMap("$artistDocs")},
			{Key: "albums", Value: albumMap("$albumDocs")},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var libraries []dto.LibraryView
	if err := cursor.All(ctx, &libraries); err != nil {
		return nil, err
	}
	if len(libraries) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &libraries[0], nil
}

func albumMap(input string) bson.D {
	return bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: input},
		{Key: "as", Value: "al"},
		{Key: "in", Value: bson.D{
			{Key: "albumId", Value: bson.D{{Key: "$toString", Value: "$$al._id"}}},
			{Key: "name", Value: "$$al.name"},
			{Key: "image", Value: "$$al.image"},
		}},
	}}}
}
