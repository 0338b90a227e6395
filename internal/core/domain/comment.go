package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength bounds comment text, counted in runes.
const MaxCommentLength = 1000

// Comment belongs to one artwork and one author. The parent artwork keeps a
// back-reference to it in Artwork.Comments.
type Comment struct {
	ID        string    `json:"id"`
	ArtworkID string    `json:"artworkId"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ValidateCommentText trims text and enforces the length bounds.
func ValidateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", Validation("text", "text is required")
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return "", Validation("text", "text must be at most %d characters", MaxCommentLength)
	}
	return text, nil
}
