package http

import (
	"encoding/json"
	"net/http"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type updateProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// HandleRegister godoc
//
//	@Summary		Register Account
//	@Description	Creates a new account seeded with the default category.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Account details"
//	@Success		201		{object}	UserResponse	"The created account"
//	@Failure		400		{object}	ErrorResponse	"error, error_description"
//	@Failure		409		{object}	ErrorResponse	"Username already taken"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	user, err := h.UserService.Register(ctx, req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleGetMe godoc
//
//	@Summary		Get Current Account
//	@Description	Returns the authenticated account, including its categories and tags.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserResponse	"The authenticated account"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me [get].
func (h *UsersHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdateMe godoc
//
//	@Summary		Update Current Account
//	@Description	Updates the authenticated account's email and full name.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		updateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	UserResponse			"The updated account"
//	@Failure		400		{object}	ErrorResponse			"error, error_description"
//	@Failure		401		{object}	ErrorResponse			"Invalid or missing access token"
//	@Failure		500		{object}	ErrorResponse			"error, error_description"
//	@Router			/api/v1/users/me [put].
func (h *UsersHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON body")
		return
	}

	user, err := h.UserService.UpdateProfile(ctx, userID, req.Email, req.FullName)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleDeactivateMe godoc
//
//	@Summary		Deactivate Current Account
//	@Description	Disables the authenticated account. Disabled accounts can no longer authenticate.
//	@Tags			Users
//	@Security		BearerAuth
//	@Success		204	"Account disabled"
//	@Failure		401	{object}	ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/me [delete].
func (h *UsersHandler) HandleDeactivateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := authedUserID(ctx, w)
	if !ok {
		return
	}

	if err := h.UserService.Deactivate(ctx, userID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
