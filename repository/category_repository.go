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

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByName(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	AddPlaylist(ctx context.Context, id, playlistID primitive.ObjectID) error
	RemovePlaylist(ctx context.Context, id, playlistID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PullPlaylistFromAll(ctx context.Context, playlistID primitive.ObjectID) error

	SearchCategories(ctx context.Context, keyword string, page, limit int64) ([]dto.CategoryView, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*dto.CategoryView, error)
}

type categoryRepository struct {
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	collection := db.Collection("categories")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})

	return &categoryRepository{collection: collection}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *categoryRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"name": exactRegex(name)}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return exists(ctx, r.collection, filter)
}

func (r *categoryRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
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

func (r *categoryRepository) AddPlaylist(ctx context.Context, id, playlistID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "playlists": bson.M{"$ne": playlistID}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"playlists": playlistID}})
	return err
}

func (r *categoryRepository) RemovePlaylist(ctx context.Context, id, playlistID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"playlists": playlistID}})
	return err
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *categoryRepository) PullPlaylistFromAll(ctx context.Context, playlistID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.UpdateMany(ctx, bson.M{"playlists": playlistID}, bson.M{"$pull": bson.M{"playlists": playlistID}})
	return err
}

func (r *categoryRepository) SearchCategories(ctx context.Context, keyword string, page, limit int64) ([]dto.CategoryView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "name", Value: keywordRegex(keyword)}}}},
	}
	pipeline = append(pipeline, paginationStages(page, limit)...)
	pipeline = append(pipeline, categoryJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []dto.CategoryView
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetCategory(ctx context.Context, id primitive.ObjectID) (*dto.CategoryView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	pipeline = append(pipeline, categoryJoinStages()...)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []dto.CategoryView
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &categories[0], nil
}

func categoryJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "playlists"},
			{Key: "localField", Value: "playlists"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "playlistDocs"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "categoryId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "name", Value: 1},
			{Key: "image", Value: 1},
			{Key: "description", Value: 1},
			{Key: "playlists", Value: playlistMap("$playlistDocs")},
		}}},
	}
}

func playlistMap(input string) bson.D {
	return bson.D{{Key: "$map", Value: bson.D{
		{Key: "input", Value: input},
		{Key: "as", Value: "p"},
		{Key: "in", Value: bson.D{
			{Key: "playlistId", Value: bson.D{{Key: "$toString", Value: "$$p._id"}}},
			{Key: "name", Value: "$$p.name"},
			{Key: "image", Value: "$$p.image"},
		}},
	}}}
}
