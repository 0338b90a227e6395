package domain

import "time"

// CommentView is a comment with its author expanded.
type CommentView struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
	User      *UserSummary `json:"userId"`
}

// ArtworkView is the denormalized read model of an artwork: the artist
// summary replaces artistId and each comment reference is expanded.
type ArtworkView struct {
	ID          string        `json:"id"`
	Artist      *UserSummary  `json:"artistId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Price       float64       `json:"price"`
	Category    Category      `json:"category"`
	Likes       []string      `json:"likes"`
	Comments    []CommentView `json:"comments"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// UserProfile is a user together with the artworks they published.
type UserProfile struct {
	User     *User         `json:"user"`
	Artworks []ArtworkView `json:"artworks"`
}

// OrderView is an order with its artwork and buyer expanded. Artwork is nil
// when the referenced artwork no longer resolves.
type OrderView struct {
	ID        string       `json:"id"`
	Artwork   *ArtworkView `json:"artworkId"`
	Buyer     *UserSummary `json:"buyerId"`
	Price     float64      `json:"price"`
	Status    OrderStatus  `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
