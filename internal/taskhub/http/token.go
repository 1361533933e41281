package http

import (
	"net/http"
	"strings"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/pkg/httpx"
	"github.com/oakmount/taskhub/pkg/jwtx"
	"github.com/oakmount/taskhub/pkg/slogx"
)

// TokenHandler serves POST /api/v1/token.
// Accepts application/x-www-form-urlencoded with username and password.
type TokenHandler struct {
	UserService *service.UserService
	Signer      *jwtx.Signer
}

// ServeHTTP godoc
//
//	@Summary		Token Endpoint
//	@Description	Exchanges a username and password for a bearer access token.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string			true	"Account username"
//	@Param			password	formData	string			true	"Account password"
//	@Success		200			{object}	TokenResponse	"access_token, token_type"
//	@Failure		400			{object}	ErrorResponse	"error, error_description"
//	@Failure		401			{object}	ErrorResponse	"error, error_description"
//	@Failure		500			{object}	ErrorResponse	"error, error_description"
//	@Header			200			{string}	Cache-Control	"no-store"
//	@Router			/api/v1/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		writeBadRequest(w, "Content-Type must be application/x-www-form-urlencoded")
		return
	}

	if err := r.ParseForm(); err != nil {
		writeBadRequest(w, "Invalid form data")
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	if username == "" || password == "" {
		writeBadRequest(w, "username and password are required")
		return
	}

	user, err := h.UserService.Authenticate(ctx, username, password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	token, err := h.Signer.Sign(user.ID, user.Username)
	if err != nil {
		log.Error("failed to sign token", "user_id", user.ID, "err", err)
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
