package dto

import (
	"time"

	"github.com/spec-kit/studypay-service/internal/domain"
)

// ServiceEntryPayload mirrors one embedded service offering.
type ServiceEntryPayload struct {
	Name       string   `json:"name"`
	PriceRange string   `json:"price_range"`
	Features   []string `json:"features,omitempty"`
	Popular    bool     `json:"popular"`
}

// CategoryCreateRequest payload for new categories.
type CategoryCreateRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Services    []ServiceEntryPayload `json:"services"`
}

// DomainServices converts the payload entries to domain values.
func (r CategoryCreateRequest) DomainServices() []domain.ServiceEntry {
	entries := make([]domain.ServiceEntry, 0, len(r.Services))
	for _, s := range r.Services {
		entries = append(entries, domain.ServiceEntry{
			Name:       s.Name,
			PriceRange: s.PriceRange,
			Features:   s.Features,
			Popular:    s.Popular,
		})
	}
	return entries
}

// CategoryResponse is the wire shape of a catalog category.
type CategoryResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Services    []ServiceEntryPayload `json:"services"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// NewCategoryResponse maps a domain category onto the wire shape.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	services := make([]ServiceEntryPayload, 0, len(category.Services))
	for _, s := range category.Services {
		services = append(services, ServiceEntryPayload{
			Name:       s.Name,
			PriceRange: s.PriceRange,
			Features:   s.Features,
			Popular:    s.Popular,
		})
	}
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Services:    services,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
