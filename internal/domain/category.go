package domain

import "time"

// ServiceEntry is one purchasable service inside a category.
type ServiceEntry struct {
	Name       string   `json:"name"`
	PriceRange string   `json:"price_range"`
	Features   []string `json:"features"`
	Popular    bool     `json:"popular"`
}

// Category groups purchasable services.
type Category struct {
	ID          string
	Name        string
	Description string
	Services    []ServiceEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FindService returns the service entry with the given name, if present.
func (c *Category) FindService(name string) (ServiceEntry, bool) {
	for _, svc := range c.Services {
		if svc.Name == name {
			return svc, true
		}
	}
	return ServiceEntry{}, false
}
