package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ragcompare/internal/contextutil"
	"ragcompare/internal/llm"
	"ragcompare/internal/partition"
	"ragcompare/internal/service"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, ErrorResponse{Message: message})
}

// handleServiceError maps service errors to HTTP status codes.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "validation error", "field", validationErr.Field, "error", validationErr.Message)
		writeError(ctx, w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrNotFound):
		logger.WarnContext(ctx, "not found", "error", err)
		writeError(ctx, w, http.StatusNotFound, err.Error())
	case errors.Is(err, partition.ErrUnsupportedContentType):
		logger.WarnContext(ctx, "unsupported document", "error", err)
		writeError(ctx, w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid input", "error", err)
		writeError(ctx, w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExternalService), errors.Is(err, llm.ErrUnavailable):
		logger.ErrorContext(ctx, "external service error", "error", err)
		writeError(ctx, w, http.StatusBadGateway, "Upstream service unavailable")
	case errors.Is(err, context.Canceled):
		logger.InfoContext(ctx, "request cancelled", "error", err)
		// 499 Client Closed Request
		writeError(ctx, w, 499, "Request cancelled")
	default:
		logger.ErrorContext(ctx, "internal error", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, defaultMsg)
	}
}
