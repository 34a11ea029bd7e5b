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

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	ExistsByIDAndRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (bool, error)
	ExistsByUsername(ctx context.Context, username string, exclude primitive.ObjectID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	SearchUsers(ctx context.Context, keyword string, page, limit int64, artistsOnly bool) ([]dto.UserView, error)
	GetUserProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserView, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	collection := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	usernameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = collection.Indexes().CreateOne(ctx, emailIndex)
	_, _ = collection.Indexes().CreateOne(ctx, usernameIndex)

	return &userRepository{
		collection: collection,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id})
}

func (r *userRepository) ExistsByIDAndRole(ctx context.Context, id primitive.ObjectID, role domain.Role) (bool, error) {
	return exists(ctx, r.collection, bson.M{"_id": id, "role": role})
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{"username": username}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	return exists(ctx, r.collection, filter)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.collection, bson.M{"email": email})
}

func (r *userRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if len(fields) == 0 {
		return nil
	}
	fields["updatedAt"] = time.Now().Unix()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// SearchUsers pages the users collection first, then joins follow edges both
// ways to attach follower/following counts.
func (r *userRepository) SearchUsers(ctx context.Context, keyword string, page, limit int64, artistsOnly bool) ([]dto.UserView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	match := bson.D{{Key: "username", Value: keywordRegex(keyword)}}
	if artistsOnly {
		match = append(match, bson.E{Key: "role", Value: domain.RoleArtist})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
	}
	pipeline = append(pipeline, paginationStages(page, limit)...)
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "followers"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "userId"},
			{Key: "as", Value: "followerEdges"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "followers"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "followerId"},
			{Key: "as", Value: "followingEdges"},
		}}},
		bson.D{{Key: "$project", Value: userProjection()}},
	)

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []dto.UserView
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetUserProfile(ctx context.Context, id primitive.ObjectID) (*dto.UserView, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "followers"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "userId"},
			{Key: "as", Value: "followerEdges"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "followers"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "followerId"},
			{Key: "as", Value: "followingEdges"},
		}}},
		{{Key: "$project", Value: userProjection()}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []dto.UserView
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &users[0], nil
}

func userProjection() bson.D {
	return bson.D{
		{Key: "_id", Value: 0},
		{Key: "userId", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
		{Key: "username", Value: 1},
		{Key: "email", Value: 1},
		{Key: "role", Value: 1},
		{Key: "gender", Value: 1},
		{Key: "dateOfBirth", Value: 1},
		{Key: "state", Value: 1},
		{Key: "country", Value: 1},
		{Key: "profilePicture", Value: 1},
		{Key: "description", Value: 1},
		{Key: "isVerified", Value: 1},
		{Key: "followers", Value: bson.D{{Key: "$size", Value: "$followerEdges"}}},
		{Key: "following", Value: bson.D{{Key: "$size", Value: "$followingEdges"}}},
	}
}
