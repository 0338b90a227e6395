package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepender31/artwork-backend/internal/api/metrics"
	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// imageField is the multipart part carrying the artwork image.
const imageField = "image"

type ArtworkHandler struct {
	artworks ports.ArtworkService
	query    ports.GalleryQueryService
}

func NewArtworkHandler(artworks ports.ArtworkService, query ports.GalleryQueryService) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks, query: query}
}

// Create publishes an artwork for the calling artist.
//
// @Summary      Create artwork
// @Tags         artwork
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        price        formData  number  true   "Price"
// @Param        category     formData  string  true   "Category"
// @Param        image        formData  file    true   "Artwork image"
// @Success      201  {object}  domain.Artwork
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /artwork [post]
func (h *ArtworkHandler) Create(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	upload, closeUpload, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	artwork, err := h.artworks.Create(c.Request().Context(), caller, artworkInput(c), upload)
	if err != nil {
		return err
	}

	metrics.ArtworksCreatedTotal.WithLabelValues(string(artwork.Category)).Inc()
	return c.JSON(http.StatusCreated, artwork)
}

// Update replaces the writable fields of an artwork owned by the caller.
//
// @Summary      Update artwork
// @Tags         artwork
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Artwork ID"
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  true   "Description"
// @Param        price        formData  number  true   "Price"
// @Param        category     formData  string  false  "Category (kept when absent)"
// @Param        image        formData  file    false  "Replacement image"
// @Success      200  {object}  domain.Artwork
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /artwork/{id} [put]
func (h *ArtworkHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	upload, closeUpload, err := formImage(c)
	if err != nil {
		return err
	}
	defer closeUpload()

	artwork, err := h.artworks.Update(c.Request().Context(), caller, c.Param("id"), artworkInput(c), upload)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, artwork)
}

// Delete removes an artwork owned by the caller together with its comments.
//
// @Summary      Delete artwork
// @Tags         artwork
// @Security     BearerAuth
// @Param        id   path  string  true  "Artwork ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /artwork/{id} [delete]
func (h *ArtworkHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	if err := h.artworks.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns every artwork, newest first.
//
// @Summary      List artworks
// @Tags         artwork
// @Produce      json
// @Success      200  {array}   domain.ArtworkView
// @Router       /artwork [get]
func (h *ArtworkHandler) List(c echo.Context) error {
	return h.list(c, ports.ArtworkFilter{})
}

// ListByCategory returns the artworks of one category.
//
// @Summary      List artworks by category
// @Tags         artwork
// @Produce      json
// @Param        category  query     string  true  "Category"
// @Success      200  {array}   domain.ArtworkView
// @Failure      400  {object}  errorResponse
// @Router       /artwork/category [get]
func (h *ArtworkHandler) ListByCategory(c echo.Context) error {
	category := c.QueryParam("category")
	if category == "" {
		return domain.Validation("category", "category is required")
	}
	return h.list(c, ports.ArtworkFilter{Category: domain.Category(category)})
}

// ListByArtist returns the artworks published by one artist.
//
// @Summary      List artworks by artist
// @Tags         artwork
// @Produce      json
// @Param        artistId  path      string  true  "Artist ID"
// @Success      200  {array}   domain.ArtworkView
// @Router       /artwork/artist/{artistId} [get]
func (h *ArtworkHandler) ListByArtist(c echo.Context) error {
	return h.list(c, ports.ArtworkFilter{ArtistID: c.Param("artistId")})
}

// ListLikedBy returns the artworks a user has liked.
//
// @Summary      List artworks liked by a user
// @Tags         artwork
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200  {array}   domain.ArtworkView
// @Router       /artwork/liked/{userId} [get]
func (h *ArtworkHandler) ListLikedBy(c echo.Context) error {
	return h.list(c, ports.ArtworkFilter{LikedBy: c.Param("userId")})
}

// MostLiked returns the artwork with the most likes.
//
// @Summary      Most liked artwork
// @Tags         artwork
// @Produce      json
// @Success      200  {object}  domain.ArtworkView
// @Failure      404  {object}  errorResponse
// @Router       /artwork/most-liked [get]
func (h *ArtworkHandler) MostLiked(c echo.Context) error {
	view, err := h.query.MostLiked(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Get returns a single artwork with its artist and comments expanded.
//
// @Summary      Get artwork
// @Tags         artwork
// @Produce      json
// @Param        id   path      string  true  "Artwork ID"
// @Success      200  {object}  domain.ArtworkView
// @Failure      404  {object}  errorResponse
// @Router       /artwork/{id} [get]
func (h *ArtworkHandler) Get(c echo.Context) error {
	view, err := h.query.GetArtwork(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Like adds the caller to the likes of an artwork.
//
// @Summary      Like artwork
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Artwork ID"
// @Success      200  {object}  likeResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /artwork/{id}/like [post]
func (h *ArtworkHandler) Like(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	artwork, err := h.artworks.Like(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.LikesTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, likeResponse{Message: "Artwork liked", Artwork: artwork})
}

// Unlike removes the caller from the likes of an artwork.
//
// @Summary      Unlike artwork
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Artwork ID"
// @Success      200  {object}  likeResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /artwork/{id}/unlike [post]
func (h *ArtworkHandler) Unlike(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	artwork, err := h.artworks.Unlike(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.LikesTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, likeResponse{Message: "Artwork unliked", Artwork: artwork})
}

func (h *ArtworkHandler) list(c echo.Context, filter ports.ArtworkFilter) error {
	views, err := h.query.ListArtworks(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

func artworkInput(c echo.Context) ports.ArtworkInput {
	return ports.ArtworkInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
		Category:    c.FormValue("category"),
		Image:       c.FormValue("image"),
	}
}

// formImage opens the optional image part. The returned close func is
// always safe to call.
func formImage(c echo.Context) (*ports.ImageUpload, func(), error) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, func() {}, he
		}
		return nil, func() {}, domain.Validation(imageField, "malformed multipart body")
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*ports.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &ports.ImageUpload{Filename: fh.Filename, Size: fh.Size, Content: f},
		func() { _ = f.Close() }, nil
}
