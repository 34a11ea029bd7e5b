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

type SongRepository interface {
	Create(ctx context.Context, song *domain.Song) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Song, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByIDAndArtist(ctx context.Context, id, artistID primitive.ObjectID) (bool, error)
	ExistsByAlbumAndFileURL(ctx context.Context, albumID primitive.ObjectID, fileURL string) (bool, error)
	CountByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddArtist(ctx context.Context, id, artistID primitive.ObjectID) error
	RemoveArtist(ctx context.Context, id, artistID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementListens(ctx context.Context, id primitive.ObjectID) error

	SearchSongs(ctx context.Context, keyword string, page, limit int64) ([]dto.SongView, error)
	GetSong(ctx context.Context, id primitive.ObjectID) (*dto.SongView, error)
}

type songRepository struct {
	collection *mongo.Collection
}

func NewSongRepository(db *mongo.Database) SongRepository {
	collection := db.Collection("songs")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "albumId", Value: 1}},
	})
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "artists", Value: 1}},
	})

	return &songRepository{collection: collection}
}

func (r *songRepository) Create(ctx context.Context, song *domain.Song) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, song)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *songRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Song, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var song domain.Song
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&song)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *songRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *songRepository) ExistsByIDAndArtist(ctx context.Context, id, artistID primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id, "artists": artistID})
}

func (r *songRepository) ExistsByAlbumAndFileURL(ctx context.Context, albumID primitive.ObjectID, fileURL string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"albumId": albumID, "fileURL": fileURL})
}

func (r *songRepository) CountByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.collection.CountDocuments(ctx, bson.M{"albumId": albumID})
}

func (r *songRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
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

// AddArtist pushes only when absent; the $ne filter is what prevents a
// duplicate under concurrent adds, not the service's earlier read check.
func (r *songRepository) AddArtist(ctx context.Context, id, artistID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "artists": bson.M{"$ne": artistID}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"artists": artistID}})
	return err
}

func (r *songRepository) RemoveArtist(ctx context.Context, id, artistID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"artists": artistID}})
	return err
}

func (r *songRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *songRepository) IncrementListens(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"listens": 1}})
	return err
}

// SearchSongs joins each page of songs with its album (1:1, unwound) and its
// artist set.
func (r *songRepository) SearchSongs(ctx context.Context, keyword string, page, limit int64) ([]dto.SongView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "name", Value: keywordRegex(keyword)}}}},
	}
	pipeline = append(pipeline, paginationStages(page, limit)...)
	pipeline = append(pipeline, songJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var songs []dto.SongView
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepository) GetSong(ctx context.Context, id primitive.ObjectID) (*dto.SongView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	pipeline = append(pipeline, songJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var songs []dto.SongView
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &songs[0], nil
}

func songJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "albums"},
			{Key: "localField", Value: "albumId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "album"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$album"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "artists"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "artistDocs"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "songId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "name", Value: 1},
			{Key: "fileURL", Value: 1},
			{Key: "listens", Value: 1},
			{Key: "album", Value: bson.D{
				{Key: "albumId", Value: bson.D{{Key: "$toString", Value: "$album._id"}}},
				{Key: "name", Value: "$album.name"},
				{Key: "image", Value: "$album.image"},
			}},
			{Key: "artists", Value: artistMap("$artistDocs")},
		}}},
	}
}

// artistMap reshapes a joined user array into the public artist form.
func artistMap(input string) bson.D {
	return bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: input},
		{Key: "as", Value: "a"},
		{Key: "in", Value: bson.D{
			{Key: "artistId", Value: bson.D{{Key: "$toString", Value: "$$a._id"}}},
			{Key: "username", Value: "$$a.username"},
			{Key: "profilePicture", Value: "$$a.profilePicture"},
		}},
	}}}
}
