package dto

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=30"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role,omitempty"`
	Secret      string `json:"secret,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country,omitempty"`
	Device      string `json:"device" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Device     string `json:"device" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
	Device       string `json:"device" binding:"required"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UpdateProfileRequest struct {
	Username       *string `json:"username,omitempty"`
	Gender         *string `json:"gender,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	State          *string `json:"state,omitempty"`
	Country        *string `json:"country,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	Description    *string `json:"description,omitempty"`
}

// PageRequest carries list pagination; zero values fall back to page 1 / limit 10.
type PageRequest struct {
	Keyword string `form:"keyword"`
	Page    int64  `form:"page"`
	Limit   int64  `form:"limit"`
}

type CreateAlbumRequest struct {
	Name  string `json:"name" binding:"required"`
	Image string `json:"image,omitempty"`
}

type UpdateAlbumRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

type CreateSongRequest struct {
	Name    string   `json:"name" binding:"required"`
	AlbumID string   `json:"albumId" binding:"required"`
	FileURL string   `json:"fileURL" binding:"required"`
	Artists []string `json:"artists" binding:"required"`
}

type UpdateSongRequest struct {
	Name         *string `json:"name,omitempty"`
	AddArtist    *string `json:"addArtist,omitempty"`
	RemoveArtist *string `json:"removeArtist,omitempty"`
}

type CreatePlaylistRequest struct {
	Name      string `json:"name" binding:"required"`
	Image     string `json:"image,omitempty"`
	IsPrivate bool   `json:"isPrivate,omitempty"`
}

type UpdatePlaylistRequest struct {
	Name      *string `json:"name,omitempty"`
	Image     *string `json:"image,omitempty"`
	IsPrivate *bool   `json:"isPrivate,omitempty"`
}

type PlaylistSongRequest struct {
	SongID string `json:"songId" binding:"required"`
}

type CreateCategoryRequest struct {
	Name             string `json:"name" binding:"required"`
	Image            string `json:"image,omitempty"`
	Description      string `json:"description,omitempty"`
	ParentCategoryID string `json:"parentCategoryId,omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Image       *string `json:"image,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CategoryPlaylistRequest struct {
	PlaylistID string `json:"playlistId" binding:"required"`
}

type LibraryItemRequest struct {
	ID string `json:"id" binding:"required"`
}
