package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanket4450/SonicBox-sub000/apperr"
	"github.com/Sanket4450/SonicBox-sub000/auth"
	"github.com/Sanket4450/SonicBox-sub000/domain"
	"github.com/Sanket4450/SonicBox-sub000/dto"
	"github.com/Sanket4450/SonicBox-sub000/logger"
	"github.com/Sanket4450/SonicBox-sub000/repository"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, accessToken string, req *dto.CreateCategoryRequest) (string, error)
	UpdateCategory(ctx context.Context, accessToken, categoryID string, req *dto.UpdateCategoryRequest) error
	AddPlaylist(ctx context.Context, accessToken, categoryID, playlistID string) error
	RemovePlaylist(ctx context.Context, accessToken, categoryID, playlistID string) error
	DeleteCategory(ctx context.Context, accessToken, categoryID string) error
	GetCategories(ctx context.Context, page *dto.PageRequest) ([]dto.CategoryView, error)
	GetCategory(ctx context.Context, categoryID string) (*dto.CategoryView, error)
}

type categoryService struct {
	guards     *guards
	categories repository.CategoryRepository
	playlists  repository.PlaylistRepository
}

func NewCategoryService(
	users repository.UserRepository,
	categories repository.CategoryRepository,
	playlists repository.PlaylistRepository,
	tokens *auth.Manager,
) CategoryService {
	return &categoryService{
		guards:     &guards{tokens: tokens, users: users},
		categories: categories,
		playlists:  playlists,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, accessToken string, req *dto.CreateCategoryRequest) (string, error) {
	identity, err := s.resolveAdmin(ctx, accessToken)
	if err != nil {
		return "", err
	}

	taken, err := s.categories.ExistsByName(ctx, req.Name, primitive.NilObjectID)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to check category name", err)
	}
	if taken {
		return "", apperr.New(apperr.Conflict, "category with this name already exists")
	}

	category := &domain.Category{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
	}

	if req.ParentCategoryID != "" {
		parentID, err := parseID(req.ParentCategoryID, "parent category id")
		if err != nil {
			return "", err
		}
		ok, err := s.categories.ExistsByID(ctx, parentID)
		if err != nil {
			return "", apperr.Wrap(apperr.Internal, "failed to look up parent category", err)
		}
		if !ok {
			return "", apperr.New(apperr.NotFound, "parent category not found")
		}
		category.ParentCategoryID = parentID
	}

	id, err := s.categories.Create(ctx, category)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to create category", err)
	}

	logger.Info(logger.EventAdminActivity, "Category created", logger.Fields(
		"category_id", id.Hex(),
		"admin_id", identity.UserID.Hex(),
	))
	return id.Hex(), nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, accessToken, categoryID string, req *dto.UpdateCategoryRequest) error {
	if _, err := s.resolveAdmin(ctx, accessToken); err != nil {
		return err
	}

	id, err := parseID(categoryID, "category id")
	if err != nil {
		return err
	}

	ok, err := s.categories.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up category", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "category not found")
	}

	fields := bson.M{}
	if req.Name != nil {
		taken, err := s.categories.ExistsByName(ctx, *req.Name, id)
		if err != nil {
			return apperr.Wrap(apperr.Internal, "failed to check category name", err)
		}
		if taken {
			return apperr.New(apperr.Conflict, "category with this name already exists")
		}
		fields["name"] = *req.Name
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	if err := s.categories.UpdateFields(ctx, id, fields); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to update category", err)
	}
	return nil
}

// AddPlaylist requires the playlist to belong to the acting admin at the
// moment of insertion; later ownership changes are not re-checked.
func (s *categoryService) AddPlaylist(ctx context.Context, accessToken, categoryID, playlistID string) error {
	identity, err := s.resolveAdmin(ctx, accessToken)
	if err != nil {
		return err
	}

	id, err := parseID(categoryID, "category id")
	if err != nil {
		return err
	}

	ok, err := s.categories.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up category", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "category not found")
	}

	pid, err := parseID(playlistID, "playlist id")
	if err != nil {
		return err
	}

	ok, err = s.playlists.ExistsByID(ctx, pid)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up playlist", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "playlist not found")
	}

	owned, err := s.playlists.ExistsByIDAndOwner(ctx, pid, identity.UserID)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to check playlist ownership", err)
	}
	if !owned {
		return apperr.New(apperr.Forbidden, "playlist does not belong to you")
	}

	if err := s.categories.AddPlaylist(ctx, id, pid); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to add playlist", err)
	}
	return nil
}

func (s *categoryService) RemovePlaylist(ctx context.Context, accessToken, categoryID, playlistID string) error {
	if _, err := s.resolveAdmin(ctx, accessToken); err != nil {
		return err
	}

	id, err := parseID(categoryID, "category id")
	if err != nil {
		return err
	}

	ok, err := s.categories.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up category", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "category not found")
	}

	pid, err := parseID(playlistID, "playlist id")
	if err != nil {
		return err
	}

	if err := s.categories.RemovePlaylist(ctx, id, pid); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to remove playlist", err)
	}
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, accessToken, categoryID string) error {
	identity, err := s.resolveAdmin(ctx, accessToken)
	if err != nil {
		return err
	}

	id, err := parseID(categoryID, "category id")
	if err != nil {
		return err
	}

	ok, err := s.categories.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "failed to look up category", err)
	}
	if !ok {
		return apperr.New(apperr.NotFound, "category not found")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "failed to delete category", err)
	}

	logger.Info(logger.EventAdminActivity, "Category deleted", logger.Fields(
		"category_id", id.Hex(),
		"admin_id", identity.UserID.Hex(),
	))
	return nil
}

func (s *categoryService) GetCategories(ctx context.Context, page *dto.PageRequest) ([]dto.CategoryView, error) {
	categories, err := s.categories.SearchCategories(ctx, page.Keyword, page.Page, page.Limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch categories", err)
	}
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*dto.CategoryView, error) {
	id, err := parseID(categoryID, "category id")
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetCategory(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "category not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to fetch category", err)
	}
	return category, nil
}

func (s *categoryService) resolveAdmin(ctx context.Context, accessToken string) (*Identity, error) {
	identity, err := s.guards.ResolveIdentity(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if err := s.guards.RequireRole(identity, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return identity, nil
}
