package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/service"
)

type AlbumHandler struct {
	svc service.AlbumService
}

func NewAlbumHandler(svc service.AlbumService) *AlbumHandler { return &AlbumHandler{svc: svc} }

func (h *AlbumHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/albums")

	g.GET("", h.ListAlbums)
	g.GET("/:id", h.GetAlbum)
	g.POST("/:id/listen", h.Listen)

	g.POST("", middleware.RequireToken(), h.CreateAlbum)
	g.PUT("/:id", middleware.RequireToken(), h.UpdateAlbum)
	g.DELETE("/:id", middleware.RequireToken(), h.DeleteAlbum)
}

func (h *AlbumHandler) ListAlbums(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	albums, err := h.svc.GetAlbums(c.Request.Context(), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) GetAlbum(c *gin.Context) {
	album, err := h.svc.GetAlbum(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) CreateAlbum(c *gin.Context) {
	var req dto.CreateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.svc.CreateAlbum(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"albumId": id})
}

func (h *AlbumHandler) UpdateAlbum(c *gin.Context) {
	var req dto.UpdateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.UpdateAlbum(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AlbumHandler) DeleteAlbum(c *gin.Context) {
	if err := h.svc.DeleteAlbum(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AlbumHandler) Listen(c *gin.Context) {
	if err := h.svc.IncrementListens(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
