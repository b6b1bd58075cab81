package restaurant

import (
	"strings"
	"time"

	"github.com/breynerciro/restaurante-app/internal/internaltypes"
)

// Restaurant is a venue reservations can be made against. All fields
// except CreatedAt are non-empty once the record exists.
type Restaurant struct {
	ID          int64
	Name        string
	Description string
	Address     string
	City        string
	PhotoURL    string
	CreatedAt   time.Time
}

// CreateInput carries the caller-supplied fields for a new restaurant.
type CreateInput struct {
	Name        string
	Description string
	Address     string
	City        string
	PhotoURL    string
}

// Validate checks that every required field is present.
func (in CreateInput) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"description", in.Description},
		{"address", in.Address},
		{"city", in.City},
		{"photo_url", in.PhotoURL},
	} {
		if strings.TrimSpace(f.value) == "" {
			return internaltypes.MissingFieldError{Field: f.name}
		}
	}
	return nil
}

// New builds an unsaved Restaurant from validated input.
func New(in CreateInput, now time.Time) Restaurant {
	return Restaurant{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		PhotoURL:    in.PhotoURL,
		CreatedAt:   now,
	}
}

// UpdateInput holds a partial field replacement. Nil means "leave as is".
type UpdateInput struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	PhotoURL    *string
}

// Apply returns r with the provided fields replaced. A provided field
// may not be empty.
func (in UpdateInput) Apply(r Restaurant) (Restaurant, error) {
	for _, f := range []struct {
		name  string
		value *string
		dst   *string
	}{
		{"name", in.Name, &r.Name},
		{"description", in.Description, &r.Description},
		{"address", in.Address, &r.Address},
		{"city", in.City, &r.City},
		{"photo_url", in.PhotoURL, &r.PhotoURL},
	} {
		if f.value == nil {
			continue
		}
		if strings.TrimSpace(*f.value) == "" {
			return Restaurant{}, internaltypes.ValidationError{Field: f.name, Reason: "must not be empty"}
		}
		*f.dst = *f.value
	}
	return r, nil
}

// Filter selects restaurants by name prefix and city substring. Empty
// criteria match everything; both criteria AND together.
type Filter struct {
	NamePrefix   string
	CityContains string
}

// Matches reports whether r satisfies the filter. The name prefix is
// case-sensitive, the city substring is not.
func (f Filter) Matches(r Restaurant) bool {
	if f.NamePrefix != "" && !strings.HasPrefix(r.Name, f.NamePrefix) {
		return false
	}
	if f.CityContains != "" && !strings.Contains(strings.ToLower(r.City), strings.ToLower(f.CityContains)) {
		return false
	}
	return true
}
