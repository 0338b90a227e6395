package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

type UserHandler struct {
	query ports.GalleryQueryService
}

func NewUserHandler(query ports.GalleryQueryService) *UserHandler {
	return &UserHandler{query: query}
}

// Profile returns a user with the artworks they published.
//
// @Summary      Get user profile
// @Tags         user
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  domain.UserProfile
// @Failure      404     {object}  errorResponse
// @Router       /user/{userId} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	profile, err := h.query.GetUserProfile(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ListArtists returns every user registered as an artist.
//
// @Summary      List artists
// @Tags         user
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /user [get]
func (h *UserHandler) ListArtists(c echo.Context) error {
	artists, err := h.query.ListArtists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, artists)
}
