package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/oakmount/taskhub/internal/taskhub/service"
	"github.com/oakmount/taskhub/pkg/httpx"
	"github.com/oakmount/taskhub/pkg/slogx"
)

// writeServiceError maps a service error onto the wire. The four service
// sentinels carry caller-facing messages; anything else is logged and
// reported as an opaque 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalid):
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
			Error:            "not_found",
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrConflict):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{
			Error:            "conflict",
			ErrorDescription: err.Error(),
		})
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "Internal server error",
		})
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: desc,
	})
}

// authedUserID pulls the authenticated user id injected by AuthnMiddleware.
func authedUserID(ctx context.Context, w http.ResponseWriter) (int64, bool) {
	id, ok := httpx.UserIDFromCtx(ctx)
	if !ok {
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Missing or invalid access token",
		})
		return 0, false
	}
	return id, true
}
