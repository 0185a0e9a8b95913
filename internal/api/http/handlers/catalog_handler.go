package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/studypay-service/internal/api/dto"
	"github.com/spec-kit/studypay-service/internal/service"
	apperrors "github.com/spec-kit/studypay-service/pkg/util"
)

// CatalogHandler exposes the service category catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List handles GET /categories.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return err
	}
	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, dto.NewCategoryResponse(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /categories/:id.
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategory(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// Create handles POST /admin/categories. Owner only.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.CreateCategory(c.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Services:    req.DomainServices(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}
