package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Category is one of the fixed artwork categories.
type Category string

const (
	CategoryAbstract     Category = "Abstract"
	CategoryLandscape    Category = "Landscape"
	CategoryPortrait     Category = "Portrait"
	CategoryModern       Category = "Modern"
	CategoryContemporary Category = "Contemporary"
	CategoryMinimalist   Category = "Minimalist"
	CategorySurreal      Category = "Surreal"
	CategoryDigital      Category = "Digital"
	CategoryPhotography  Category = "Photography"
	CategorySculpture    Category = "Sculpture"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{
	CategoryAbstract,
	CategoryLandscape,
	CategoryPortrait,
	CategoryModern,
	CategoryContemporary,
	CategoryMinimalist,
	CategorySurreal,
	CategoryDigital,
	CategoryPhotography,
	CategorySculpture,
}

// Valid reports whether c belongs to Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Artwork is the aggregate root for a published piece. Likes is a membership
// set of user ids; Comments holds comment ids in chronological order.
type Artwork struct {
	ID          string    `json:"id"`
	ArtistID    string    `json:"artistId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Likes       []string  `json:"likes"`
	Comments    []string  `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LikedBy reports whether userID is in the likes set.
func (a *Artwork) LikedBy(userID string) bool {
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ArtworkFields is the validated, writable part of an artwork. ArtistID,
// Likes and Comments are deliberately absent: they are never taken from a
// request payload.
type ArtworkFields struct {
	Title       string
	Description string
	Image       string
	Price       float64
	Category    Category
}

// ArtworkDraft is the raw, unvalidated artwork payload as received.
// Price stays a string so that "missing" and "not a number" can be told apart.
type ArtworkDraft struct {
	Title       string
	Description string
	Image       string
	Price       string
	Category    string
}

// Validate checks the draft and returns the typed fields. Title,
// description, image and price are hard requirements; there are no defaults.
func (d ArtworkDraft) Validate() (ArtworkFields, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return ArtworkFields{}, Validation("title", "title is required")
	}
	description := strings.TrimSpace(d.Description)
	if description == "" {
		return ArtworkFields{}, Validation("description", "description is required")
	}
	if strings.TrimSpace(d.Image) == "" {
		return ArtworkFields{}, Validation("image", "image is required")
	}
	price, err := ParsePrice(d.Price)
	if err != nil {
		return ArtworkFields{}, err
	}
	category := Category(strings.TrimSpace(d.Category))
	if !category.Valid() {
		return ArtworkFields{}, Validation("category", "category must be one of: %s", categoryList())
	}

	return ArtworkFields{
		Title:       title,
		Description: description,
		Image:       d.Image,
		Price:       price,
		Category:    category,
	}, nil
}

// ParsePrice parses a positive decimal price.
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Validation("price", "price is required")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, Validation("price", "price must be a number")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, Validation("price", "price must be a number")
	}
	if price <= 0 {
		return 0, Validation("price", "price must be greater than 0")
	}
	return price, nil
}

func categoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
