package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepender31/artwork-backend/internal/api/metrics"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Add posts a comment on an artwork.
//
// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Artwork ID"
// @Param        body  body      commentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /artwork/{id}/comment [post]
func (h *CommentHandler) Add(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	comment, err := h.comments.Add(c.Request().Context(), caller, c.Param("id"), req.Text)
	if err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusCreated, comment)
}

// Delete removes a comment. Allowed for its author and the artwork owner.
//
// @Summary      Delete comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id         path  string  true  "Artwork ID"
// @Param        commentId  path  string  true  "Comment ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /artwork/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), caller, c.Param("id"), c.Param("commentId")); err != nil {
		return err
	}

	metrics.CommentsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}
