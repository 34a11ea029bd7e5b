package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/categories")

	g.GET("", h.ListCategories)
	g.GET("/:id", h.GetCategory)

	g.POST("", middleware.RequireToken(), h.CreateCategory)
	g.PUT("/:id", middleware.RequireToken(), h.UpdateCategory)
	g.DELETE("/:id", middleware.RequireToken(), h.DeleteCategory)
	g.POST("/:id/playlists", middleware.RequireToken(), h.AddPlaylist)
	g.DELETE("/:id/playlists/:playlistId", middleware.RequireToken(), h.RemovePlaylist)
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	categories, err := h.svc.GetCategories(c.Request.Context(), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.svc.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.svc.CreateCategory(c.Request.Context(), middleware.AccessToken(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"categoryId": id})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.UpdateCategory(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) AddPlaylist(c *gin.Context) {
	var req dto.CategoryPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.AddPlaylist(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), req.PlaylistID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) RemovePlaylist(c *gin.Context) {
	if err := h.svc.RemovePlaylist(c.Request.Context(), middleware.AccessToken(c), c.Param("id"), c.Param("playlistId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
