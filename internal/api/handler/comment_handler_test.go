package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
)

func TestCommentHandler_Add(t *testing.T) {
	stub := &stubCommentService{
		addFn: func(ctx context.Context, callerID, artworkID, text string) (*domain.Comment, error) {
			if callerID != "user-1" || artworkID != "a1" || text != "Lovely" {
				t.Fatalf("unexpected args %s %s %s", callerID, artworkID, text)
			}
			return &domain.Comment{ID: "c1", ArtworkID: artworkID, UserID: callerID, Text: text}, nil
		},
	}
	handler := NewCommentHandler(stub)

	c, rec := newContext(jsonRequest(http.MethodPost, "/artwork/a1/comment", strings.NewReader(`{"text":"Lovely"}`)), "user-1")
	c.SetParamNames("id")
	c.SetParamValues("a1")

	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCommentHandler_Add_Unauthenticated(t *testing.T) {
	handler := NewCommentHandler(&stubCommentService{})

	c, _ := newContext(jsonRequest(http.MethodPost, "/artwork/a1/comment", strings.NewReader(`{"text":"x"}`)), "")
	assertHTTPError(t, handler.Add(c), http.StatusUnauthorized)
}

func TestCommentHandler_Delete(t *testing.T) {
	stub := &stubCommentService{
		deleteFn: func(ctx context.Context, callerID, artworkID, commentID string) error {
			if artworkID != "a1" || commentID != "c1" {
				t.Fatalf("unexpected args %s %s", artworkID, commentID)
			}
			if callerID == "stranger" {
				return domain.Forbidden("only the author or the artwork owner can delete this comment")
			}
			return nil
		},
	}
	handler := NewCommentHandler(stub)

	c, rec := newContext(httptest.NewRequest(http.MethodDelete, "/artwork/a1/comments/c1", nil), "user-1")
	c.SetParamNames("id", "commentId")
	c.SetParamValues("a1", "c1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newContext(httptest.NewRequest(http.MethodDelete, "/artwork/a1/comments/c1", nil), "stranger")
	c.SetParamNames("id", "commentId")
	c.SetParamValues("a1", "c1")
	if err := handler.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
