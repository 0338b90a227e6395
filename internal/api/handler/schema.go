package handler

import "github.com/Deepender31/artwork-backend/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Username     string `json:"username"     validate:"required"`
	Email        string `json:"email"        validate:"required,email"`
	Password     string `json:"password"     validate:"required"`
	Role         string `json:"role"         validate:"required,oneof=artist user"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profileImage"`
}

// loginRequest accepts the identifier under any of the three names the
// clients use; the first non-empty one wins.
type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

func (r loginRequest) identifier() string {
	for _, v := range []string{r.Identifier, r.Email, r.Username} {
		if v != "" {
			return v
		}
	}
	return ""
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type likeResponse struct {
	Message string          `json:"message"`
	Artwork *domain.Artwork `json:"artwork"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type createOrderRequest struct {
	ArtworkID string  `json:"artworkId"`
	Price     float64 `json:"price"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}
