package http

import (
	"encoding/json"
	"net/http"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/pkg/httpx"
)

type TagsHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List Tags
//	@Description	Returns the authenticated account's tags.
//	@Tags			Tags
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		LabelResponse	"Tags"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me/tags [get].
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	tags, err := h.UserService.Tags(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]LabelResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, LabelResponse{Name: t.Name, Color: t.Color})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleAdd godoc
//
//	@Summary		Add Tag
//	@Description	Adds a named, coloured tag to the authenticated account.
//	@Tags			Tags
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		labelRequest	true	"Tag name and #rrggbb colour"
//	@Success		201		{object}	LabelResponse	"The created tag"
//	@Failure		400		{object}	ErrorResponse	"error, error_description"
//	@Failure		401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		409		{object}	ErrorResponse	"Tag already exists"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me/tags [post].
func (h *TagsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
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

	tag, err := h.UserService.AddTag(ctx, userID, req.Name, req.Color)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, LabelResponse{Name: tag.Name, Color: tag.Color})
}

// HandleRemove godoc
//
//	@Summary		Remove Tag
//	@Description	Removes a tag from the authenticated account by name.
//	@Tags			Tags
//	@Security		BearerAuth
//	@Param			name	path	string	true	"Tag name"
//	@Success		204		"Tag removed"
//	@Failure		401		{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		404		{object}	ErrorResponse	"Tag not found"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me/tags/{name} [delete].
func (h *TagsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	if err := h.UserService.RemoveTag(ctx, userID, r.PathValue("name")); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
