package http

import (
	"encoding/json"
	"net/http"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/pkg/httpx"
)

type CategoriesHandler struct {
	UserService *service.UserService
}

type labelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// HandleList godoc
//
//	@Summary		List Categories
//	@Description	Returns the authenticated account's categories.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		LabelResponse	"Categories"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	cats, err := h.UserService.Categories(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]LabelResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, LabelResponse{Name: c.Name, Color: c.Color})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAdd godoc
//
//	@Summary		Add Category
//	@Description	Adds a named, coloured category to the authenticated account.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		labelRequest	true	"Category name and #rrggbb colour"
//	@Success		201		{object}	LabelResponse	"The created category"
//	@Failure		400		{object}	ErrorResponse	"error, error_description"
//	@Failure		401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		409		{object}	ErrorResponse	"Category already exists"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me/categories [post].
func (h *CategoriesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	var req labelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	cat, err := h.UserService.AddCategory(ctx, userID, req.Name, req.Color)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, LabelResponse{Name: cat.Name, Color: cat.Color})
}

// HandleRemove godoc
//
//	@Summary		Remove Category
//	@Description	Removes a category from the authenticated account by name.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Param			name	path	string	true	"Category name"
//	@Success		204		"Category removed"
//	@Failure		401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		404		{object}	ErrorResponse	"Category not found"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me/categories/{name} [delete].
func (h *CategoriesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	if err := h.UserService.RemoveCategory(ctx, userID, r.PathValue("name")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
