package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/service"
)

type SongHandler struct {
	svc service.SongService
}

func NewSongHandler(svc service.SongService) *SongHandler { return &SongHandler{svc: svc} }

func (h *SongHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/songs")

	g.GET("", h.ListSongs)
	g.GET("/:id", h.GetSong)
	g.POST("/:id/listen", h.Listen)

	g.POST("", middleware.RequireToken(), h.CreateSong)
	g.PUT("/:id", middleware.RequireToken(), h.UpdateSong)
	g.DELETE("/:id", middleware.RequireToken(), h.DeleteSong)
}

func (h *SongHandler) ListSongs(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	songs, err := h.svc.GetSongs(c.Request.Context(), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, songs)
}

func (h *SongHandler) GetSong(c *gin.Context) {
	song, err := h.svc.GetSong(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, song)
}

func (h *SongHandler) CreateSong(c *gin.Context) {
	var req dto.CreateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.svc.CreateSong(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"songId": id})
}

func (h *SongHandler) UpdateSong(c *gin.Context) {
	var req dto.UpdateSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.UpdateSong(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SongHandler) DeleteSong(c *gin.Context) {
	if err := h.svc.DeleteSong(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SongHandler) Listen(c *gin.Context) {
	if err := h.svc.IncrementListens(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
