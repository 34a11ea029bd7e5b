package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/middleware"
	"github.com/Sanket4450/SonicBox-sub000/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/users")

	g.GET("", h.ListUsers)
	g.GET("/artists", h.ListArtists)

	g.GET("/me", middleware.RequireToken(), h.Me)
	g.PUT("/me", middleware.RequireToken(), h.UpdateProfile)
	g.DELETE("/me", middleware.RequireToken(), h.DeleteAccount)
	g.GET("/me/followers", middleware.RequireToken(), h.Followers)
	g.GET("/me/following", middleware.RequireToken(), h.Following)

	g.GET("/:id", middleware.RequireToken(), h.GetUser)
	g.POST("/:id/follow", middleware.RequireToken(), h.Follow)
	g.DELETE("/:id/follow", middleware.RequireToken(), h.Unfollow)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.svc.GetUsers(c.Request.Context(), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ListArtists(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	artists, err := h.svc.GetArtists(c.Request.Context(), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.GetProfile(c.Request.Context(), middleware.AccessToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), middleware.AccessToken(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.svc.UpdateProfile(c.Request.Context(), middleware.AccessToken(c), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), middleware.AccessToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) Follow(c *gin.Context) {
	if err := h.svc.FollowUser(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	if err := h.svc.UnfollowUser(c.Request.Context(), middleware.AccessToken(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) Followers(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := h.svc.GetFollowers(c.Request.Context(), middleware.AccessToken(c), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Following(c *gin.Context) {
	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondBindError(c, err)
		return
	}

	out, err := h.svc.GetFollowing(c.Request.Context(), middleware.AccessToken(c), &page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
