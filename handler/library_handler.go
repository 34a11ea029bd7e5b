package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/service"
)

type LibraryHandler struct {
	svc service.LibraryService
}

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

func (h *LibraryHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/library", middleware.RequireToken())

	g.GET("", h.GetLibrary)
	g.POST("/playlists", h.AddPlaylist)
	g.DELETE("/playlists/:id", h.RemovePlaylist)
	g.POST("/artists", h.AddArtist)
	g.DELETE("/artists/:id", h.RemoveArtist)
	g.POST("/albums", h.AddAlbum)
	g.DELETE("/albums/:id", h.RemoveAlbum)
}

func (h *LibraryHandler) GetLibrary(c *gin.Context) {
	library, err := h.svc.GetLibrary(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, library)
}

func (h *LibraryHandler) AddPlaylist(c *gin.Context) {
	var req dto.LibraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.AddPlaylist(c.Request.Context(), middleware.AccessToken(c), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LibraryHandler) RemovePlaylist(c *gin.Context) {
	if err := h.svc.RemovePlaylist(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LibraryHandler) AddArtist(c *gin.Context) {
	var req dto.LibraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.AddArtist(c.Request.Context(), middleware.AccessToken(c), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LibraryHandler) RemoveArtist(c *gin.Context) {
	if err := h.svc.RemoveArtist(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LibraryHandler) AddAlbum(c *gin.Context) {
	var req dto.LibraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.AddAlbum(c.Request.Context(), middleware.AccessToken(c), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LibraryHandler) RemoveAlbum(c *gin.Context) {
	if err := h.svc.RemoveAlbum(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
