package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
)

type PlaylistRepository interface {
	Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error)
	ExistsByNameForOwner(ctx context.Context, name string, ownerID, exclude primitive.ObjectID) (bool, error)
	IsPrivate(ctx context.Context, id primitive.ObjectID) (bool, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddSong(ctx context.Context, id, songID primitive.ObjectID) error
	RemoveSong(ctx context.Context, id, songID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteAllForUser(ctx context.Context, ownerID primitive.ObjectID) error
	PullSongFromAll(ctx context.Context, songID primitive.ObjectID) error
	IncrementListens(ctx context.Context, id primitive.ObjectID) error

	SearchPlaylists(ctx context.Context, keyword string, page, limit int64, viewerID primitive.ObjectID) ([]dto.PlaylistView, error)
	GetPlaylist(ctx context.Context, id primitive.ObjectID) (*dto.PlaylistView, error)
}

type playlistRepository struct {
	collection *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) PlaylistRepository {
	collection := db.Collection("playlists")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "songs", Value: 1}},
	})

	return &playlistRepository{collection: collection}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *domain.Playlist) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, playlist)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *playlistRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var playlist domain.Playlist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *playlistRepository) ExistsByIDAndOwner(ctx context.Context, id, ownerID primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id, "userId": ownerID})
}

func (r *playlistRepository) ExistsByNameForOwner(ctx context.Context, name string, ownerID, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"userId": ownerID, "name": exactRegex(name)}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return exists(ctx, r.collection, filter)
}

// IsPrivate fetches only the privacy flag; the library add guard reads it at
// add time and never again.
func (r *playlistRepository) IsPrivate(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc struct {
		IsPrivate bool `bson:"isPrivate"`
	}
	opts := options.FindOne().SetProjection(bson.M{"isPrivate": 1})
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if err != nil {
		return false, err
	}
	return doc.IsPrivate, nil
}

func (r *playlistRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if len(fields) == 0 {
		return nil
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *playlistRepository) AddSong(ctx context.Context, id, songID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "songs": bson.M{"$ne": songID}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"songs": songID}})
	return err
}

func (r *playlistRepository) RemoveSong(ctx context.Context, id, songID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"songs": songID}})
	return err
}

func (r *playlistRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *playlistRepository) DeleteAllForUser(ctx context.Context, ownerID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}

// PullSongFromAll scrubs a deleted song out of every playlist.
func (r *playlistRepository) PullSongFromAll(ctx context.Context, songID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.UpdateMany(ctx, bson.M{"songs": songID}, bson.M{"$pull": bson.M{"songs": songID}})
	return err
}

func (r *playlistRepository) IncrementListens(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"listens": 1}})
	return err
}

// SearchPlaylists returns public playlists plus the viewer's own private ones,
// joined with owner and songs.
func (r *playlistRepository) SearchPlaylists(ctx context.Context, keyword string, page, limit int64, viewerID primitive.ObjectID) ([]dto.PlaylistView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	visibility := bson.A{bson.D{{Key: "isPrivate", Value: false}}}
	if !viewerID.IsZero() {
		visibility = append(visibility, bson.D{{Key: "userId", Value: viewerID}})
	}
	match := bson.D{
		{Key: "name", Value: keywordRegex(keyword)},
		{Key: "$or", Value: visibility},
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
	}
	pipeline = append(pipeline, paginationStages(page, limit)...)
	pipeline = append(pipeline, playlistJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var playlists []dto.PlaylistView
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *playlistRepository) GetPlaylist(ctx context.Context, id primitive.ObjectID) (*dto.PlaylistView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	pipeline = append(pipeline, playlistJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var playlists []dto.PlaylistView
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	if len(playlists) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &playlists[0], nil
}

func playlistJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "userId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "songs"},
			{Key: "localField", Value: "songs"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "songDocs"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "playlistId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "name", Value: 1},
			{Key: "image", Value: 1},
			{Key: "isPrivate", Value: 1},
			{Key: "listens", Value: 1},
			{Key: "owner", Value: bson.D{
				{Key: "artistId", Value: bson.D{{Key: "$toString", Value: "$owner._id"}}},
				{Key: "username", Value: "$owner.username"},
				{Key: "profilePicture", Value: "$owner.profilePicture"},
			}},
			{Key: "songs", Value: songMap("$songDocs")},
		}}},
	}
}
