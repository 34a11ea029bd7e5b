package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleUser   Role = "user"
	RoleArtist Role = "artist"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleArtist || r == RoleAdmin
}

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	Role           Role               `bson:"role"`
	Gender         string             `bson:"gender,omitempty"`
	DateOfBirth    string             `bson:"dateOfBirth,omitempty"`
	State          string             `bson:"state,omitempty"`
	Country        string             `bson:"country,omitempty"`
	ProfilePicture string             `bson:"profilePicture,omitempty"`
	Description    string             `bson:"description,omitempty"`
	IsVerified     bool               `bson:"isVerified"`
	CreatedAt      int64              `bson:"createdAt"`
	UpdatedAt      int64              `bson:"updatedAt"`
}

type Session struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"userId"`
	Device string             `bson:"device"`
	Token  string             `bson:"token"`
}

// Follower is a follow edge: FollowerID follows UserID.
type Follower struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     primitive.ObjectID `bson:"userId"`
	FollowerID primitive.ObjectID `bson:"followerId"`
}
