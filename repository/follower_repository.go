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

type FollowerRepository interface {
	Exists(ctx context.Context, userID, followerID primitive.ObjectID) (bool, error)
	Create(ctx context.Context, edge *domain.Follower) error
	Delete(ctx context.Context, userID, followerID primitive.ObjectID) error
	DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error
	GetFollowers(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]dto.ArtistRef, error)
	GetFollowing(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]dto.ArtistRef, error)
}

type followerRepository struct {
	collection *mongo.Collection
}

func NewFollowerRepository(db *mongo.Database) FollowerRepository {
	collection := db.Collection("followers")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Pair uniqueness is enforced by the service's existence check, not here;
	// these indexes only serve the lookups.
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "followerId", Value: 1}},
	})
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "followerId", Value: 1}},
	})

	return &followerRepository{collection: collection}
}

func (r *followerRepository) Exists(ctx context.Context, userID, followerID primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"userId": userID, "followerId": followerID})
}

func (r *followerRepository) Create(ctx context.Context, edge *domain.Follower) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, edge)
	return err
}

func (r *followerRepository) Delete(ctx context.Context, userID, followerID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID, "followerId": followerID})
	return err
}

// DeleteAllForUser removes every edge touching the user, either side.
func (r *followerRepository) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"userId": userID},
		bson.M{"followerId": userID},
	}}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

func (r *followerRepository) GetFollowers(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]dto.ArtistRef, error) {
	return r.joinUsers(ctx, bson.D{{Key: "userId", Value: userID}}, "followerId", page, limit)
}

func (r *followerRepository) GetFollowing(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]dto.ArtistRef, error) {
	return r.joinUsers(ctx, bson.D{{Key: "followerId", Value: userID}}, "userId", page, limit)
}

// joinUsers pages the edge collection and joins the user on the other side of
// each edge.
func (r *followerRepository) joinUsers(ctx context.Context, match bson.D, localField string, page, limit int64) ([]dto.ArtistRef, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
	}
	pipeline = append(pipeline, paginationStages(page, limit)...)
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "artistId", Value: bson.D{{Key: "$toString", Value: "$user._id"}}},
			{Key: "username", Value: "$user.username"},
			{Key: "profilePicture", Value: "$user.profilePicture"},
		}}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var refs []dto.ArtistRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}
