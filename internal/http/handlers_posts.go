package httpx

import (
	"errors"
	"net/http"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	apperrors "github.com/luminaryawards/program-api/internal/errors"
	"github.com/luminaryawards/program-api/internal/service"
)

// PostHandlers provides HTTP handlers for blog post operations.
type PostHandlers struct {
	Svc *service.PostService
}

// Create handles HTTP requests to create a post. The author is always the
// authenticated admin; any author_id in the body is ignored.
func (h *PostHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, ok := GetAuthContextFromContext(r.Context())
	if !ok {
		WriteError(
			w,
			ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthorized", Err: errors.New("authentication required")},
		)
		return
	}
	req.AuthorID = authCtx.UserID

	post, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPostSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, post)
}

// List handles back-office listing of posts, drafts included.
func (h *PostHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := postListOptionsFromQuery(r)

	posts, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"limit":  opts.Limit,
		"offset": opts.Offset,
	})
}

// ListPublic handles unauthenticated listing of live, published posts.
func (h *PostHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	opts := postListOptionsFromQuery(r)

	posts, err := h.Svc.ListPublic(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"posts":  posts,
		"limit":  opts.Limit,
		"offset": opts.Offset,
	})
}

// GetPublicBySlug handles public post lookups. Drafts and scheduled posts
// read as 404 here.
func (h *PostHandlers) GetPublicBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("post slug is required")},
		)
		return
	}

	post, err := h.Svc.GetPublicBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, data.ErrPostNotFound) || apperrors.IsNotFound(err) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "post_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// GetByID handles back-office post lookups.
func (h *PostHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("post id is required")},
		)
		return
	}

	post, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrPostNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "post_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Update handles HTTP requests to update a post.
func (h *PostHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("post id is required")},
		)
		return
	}

	var req model.UpdatePostRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrPostNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "post_not_found", Err: err})
		case errors.Is(err, data.ErrPostSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, post)
}

// Delete handles HTTP requests to delete a post.
func (h *PostHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("post id is required")},
		)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "post_not_found", Err: errors.New("post not found")},
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postListOptionsFromQuery(r *http.Request) model.PostsListOptions {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)
	opts := model.PostsListOptions{
		Limit:  limit,
		Offset: offset,
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if tag := r.URL.Query().Get("tag"); tag != "" {
		opts.Tag = &tag
	}
	return opts
}
