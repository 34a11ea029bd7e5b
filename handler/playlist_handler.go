package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/service"
)

type PlaylistHandler struct {
	svc service.PlaylistService
}

func NewPlaylistHandler(svc service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

func (h *PlaylistHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/playlists")

	// Listing and reads take an optional token: anonymous viewers see only
	// public playlists, owners also see their private ones.
	g.GET("", middleware.OptionalToken(), h.ListPlaylists)
	g.GET("/:id", middleware.OptionalToken(), h.GetPlaylist)
	g.POST("/:id/listen", h.Listen)

	g.POST("", middleware.RequireToken(), h.CreatePlaylist)
	g.PUT("/:id", middleware.RequireToken(), h.UpdatePlaylist)
	g.DELETE("/:id", middleware.RequireToken(), h.DeletePlaylist)
	g.POST("/:id/songs", middleware.RequireToken(), h.AddSong)
	g.DELETE("/:id/songs/:songId", middleware.RequireToken(), h.RemoveSong)
}

func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	playlists, err := h.svc.GetPlaylists(c.Request.Context(), middleware.AccessToken(c), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlists)
}

func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	playlist, err := h.svc.GetPlaylist(c.Request.Context(), middleware.AccessToken(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.svc.CreatePlaylist(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"playlistId": id})
}

func (h *PlaylistHandler) UpdatePlaylist(c *gin.Context) {
	var req dto.UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.UpdatePlaylist(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	if err := h.svc.DeletePlaylist(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var req dto.PlaylistSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.AddSong(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), req.SongID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	if err := h.svc.RemoveSong(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), c.Param("songId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PlaylistHandler) Listen(c *gin.Context) {
	if err := h.svc.IncrementListens(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
