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

type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) (primitive.ObjectID, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByIDAndArtist(ctx context.Context, id, artistID primitive.ObjectID) (bool, error)
	ExistsByNameForArtist(ctx context.Context, name string, artistID, exclude primitive.ObjectID) (bool, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementListens(ctx context.Context, id primitive.ObjectID) error

	SearchAlbums(ctx context.Context, keyword string, page, limit int64) ([]dto.AlbumView, error)
	GetAlbum(ctx context.Context, id primitive.ObjectID) (*dto.AlbumView, error)
}

type albumRepository struct {
	collection *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) AlbumRepository {
	collection := db.Collection("albums")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "artistId", Value: 1}},
	})

	return &albumRepository{collection: collection}
}

func (r *albumRepository) Create(ctx context.Context, album *domain.Album) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, album)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *albumRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *albumRepository) ExistsByIDAndArtist(ctx context.Context, id, artistID primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id, "artistId": artistID})
}

// ExistsByNameForArtist checks the per-artist case-insensitive name uniqueness
// rule. exclude skips the album being renamed.
func (r *albumRepository) ExistsByNameForArtist(ctx context.Context, name string, artistID, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"artistId": artistID, "name": exactRegex(name)}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return exists(ctx, r.collection, filter)
}

func (r *albumRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
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

func (r *albumRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *albumRepository) IncrementListens(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"listens": 1}})
	return err
}

// SearchAlbums joins each page of albums with its artist and songs.
func (r *albumRepository) SearchAlbums(ctx context.Context, keyword string, page, limit int64) ([]dto.AlbumView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "name", Value: keywordRegex(keyword)}}}},
	}
	pipeline = append(pipeline, paginationStages(page, limit)...)
	pipeline = append(pipeline, albumJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var albums []dto.AlbumView
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *albumRepository) GetAlbum(ctx context.Context, id primitive.ObjectID) (*dto.AlbumView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	pipeline = append(pipeline, albumJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var albums []dto.AlbumView
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, err
	}
	if len(albums) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &albums[0], nil
}

// albumJoinStages attaches the owning artist (1:1, unwound) and the album's
// songs, then projects the public field names.
func albumJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "artistId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "artist"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$artist"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "songs"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "albumId"},
			{Key: "as", Value: "songs"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "albumId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "name", Value: 1},
			{Key: "image", Value: 1},
			{Key: "listens", Value: 1},
			{Key: "artist", Value: bson.D{
				{Key: "artistId", Value: bson.D{{Key: "$toString", Value: "$artist._id"}}},
				{Key: "username", Value: "$artist.username"},
				{Key: "profilePicture", Value: "$artist.profilePicture"},
			}},
			{Key: "songs", Value: songMap("$songs")},
		}}},
	}
}

// songMap reshapes a joined song array into the public nested form.
func songMap(input string) bson.D {
	return bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: input},
		{Key: "as", Value: "s"},
		{Key: "in", Value: bson.D{
			{Key: "songId", Value: bson.D{{Key: "$toString", Value: "$$s._id"}}},
			{Key: "name", Value: "$$s.name"},
			{Key: "fileURL", Value: "$$s.fileURL"},
			{Key: "listens", Value: "$$s.listens"},
		}},
	}}}
}
