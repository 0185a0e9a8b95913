package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/studypay-service/internal/domain"
	"github.com/spec-kit/studypay-service/internal/repository"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// CatalogService manages service categories.
type CatalogService struct {
	categories repository.CategoryRepository
}

func NewCatalogService(categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{categories: categories}
}

// CategoryInput carries a new category with its embedded services.
type CategoryInput struct {
	Name        string
	Description string
	Services    []domain.ServiceEntry
}

// ListCategories returns all categories with their services.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// GetCategory loads a single category.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// CreateCategory adds a category. Service names must be unique within it.
func (s *CatalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required", nil)
	}
	if len(input.Services) == 0 {
		return nil, apperrors.NewValidationError("at least one service is required", nil)
	}
	seen := make(map[string]struct{}, len(input.Services))
	for _, svc := range input.Services {
		if strings.TrimSpace(svc.Name) == "" {
			return nil, apperrors.NewValidationError("service name is required", nil)
		}
		if _, dup := seen[svc.Name]; dup {
			return nil, apperrors.NewConflict("duplicate service name in category", map[string]any{"service": svc.Name})
		}
		seen[svc.Name] = struct{}{}
	}

	category := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Services:    input.Services,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}
