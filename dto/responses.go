package dto

// Read models produced by the aggregation pipelines. The bson tags match the
// $project stage output names, the json tags are the public API shape.

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthResponse struct {
	UserID string    `json:"userId"`
	Role   string    `json:"role"`
	Tokens TokenPair `json:"tokens"`
}

type UserView struct {
	UserID         string `bson:"userId" json:"userId"`
	Username       string `bson:"username" json:"username"`
	Email          string `bson:"email" json:"email"`
	Role           string `bson:"role" json:"role"`
	Gender         string `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth    string `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	State          string `bson:"state,omitempty" json:"state,omitempty"`
	Country        string `bson:"country,omitempty" json:"country,omitempty"`
	ProfilePicture string `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
	IsVerified     bool   `bson:"isVerified" json:"isVerified"`
	Followers      int64  `bson:"followers" json:"followers"`
	Following      int64  `bson:"following" json:"following"`
}

type ArtistRef struct {
	ArtistID       string `bson:"artistId" json:"artistId"`
	Username       string `bson:"username" json:"username"`
	ProfilePicture string `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}

type SongRef struct {
	SongID  string `bson:"songId" json:"songId"`
	Name    string `bson:"name" json:"name"`
	FileURL string `bson:"fileURL" json:"fileURL"`
	Listens int64  `bson:"listens" json:"listens"`
}

type AlbumRef struct {
	AlbumID string `bson:"albumId" json:"albumId"`
	Name    string `bson:"name" json:"name"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`
}

type AlbumView struct {
	AlbumID string    `bson:"albumId" json:"albumId"`
	Name    string    `bson:"name" json:"name"`
	Image   string    `bson:"image,omitempty" json:"image,omitempty"`
	Listens int64     `bson:"listens" json:"listens"`
	Artist  ArtistRef `bson:"artist" json:"artist"`
	Songs   []SongRef `bson:"songs" json:"songs"`
}

type SongView struct {
	SongID  string      `bson:"songId" json:"songId"`
	Name    string      `bson:"name" json:"name"`
	FileURL string      `bson:"fileURL" json:"fileURL"`
	Listens int64       `bson:"listens" json:"listens"`
	Album   AlbumRef    `bson:"album" json:"album"`
	Artists []ArtistRef `bson:"artists" json:"artists"`
}

type PlaylistRef struct {
	PlaylistID string `bson:"playlistId" json:"playlistId"`
	Name       string `bson:"name" json:"name"`
	Image      string `bson:"image,omitempty" json:"image,omitempty"`
}

type PlaylistView struct {
	PlaylistID string    `bson:"playlistId" json:"playlistId"`
	Name       string    `bson:"name" json:"name"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
	IsPrivate  bool      `bson:"isPrivate" json:"isPrivate"`
	Listens    int64     `bson:"listens" json:"listens"`
	Owner      ArtistRef `bson:"owner" json:"owner"`
	Songs      []SongRef `bson:"songs" json:"songs"`
}

type CategoryView struct {
	CategoryID  string        `bson:"categoryId" json:"categoryId"`
	Name        string        `bson:"name" json:"name"`
	Image       string        `bson:"image,omitempty" json:"image,omitempty"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Playlists   []PlaylistRef `bson:"playlists" json:"playlists"`
}

type LibraryView struct {
	LibraryID string        `bson:"libraryId" json:"libraryId"`
	UserID    string        `bson:"userId" json:"userId"`
	Playlists []PlaylistRef `bson:"playlists" json:"playlists"`
	Artists   []ArtistRef   `bson:"artists" json:"artists"`
	Albums    []AlbumRef    `bson:"albums" json:"albums"`
}
