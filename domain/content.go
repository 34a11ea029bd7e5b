package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Album struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	ArtistID primitive.ObjectID `bson:"artistId"`
	Image    string             `bson:"image,omitempty"`
	Listens  int64              `bson:"listens"`
}

type Song struct {
	ID      primitive.ObjectID   `bson:"_id,omitempty"`
	Name    string               `bson:"name"`
	AlbumID primitive.ObjectID   `bson:"albumId"`
	FileURL string               `bson:"fileURL"`
	Artists []primitive.ObjectID `bson:"artists"`
	Listens int64                `bson:"listens"`
}

type Playlist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `bson:"userId"`
	Name      string               `bson:"name"`
	Image     string               `bson:"image"`
	IsPrivate bool                 `bson:"isPrivate"`
	Listens   int64                `bson:"listens"`
	Songs     []primitive.ObjectID `bson:"songs"`
}

type Category struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty"`
	Name             string               `bson:"name"`
	Image            string               `bson:"image,omitempty"`
	Description      string               `bson:"description,omitempty"`
	ParentCategoryID primitive.ObjectID   `bson:"parentCategoryId,omitempty"`
	Playlists        []primitive.ObjectID `bson:"playlists"`
}

// Library holds a user's saved content, one document per user.
type Library struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `bson:"userId"`
	Playlists []primitive.ObjectID `bson:"playlists"`
	Artists   []primitive.ObjectID `bson:"artists"`
	Albums    []primitive.ObjectID `bson:"albums"`
}
