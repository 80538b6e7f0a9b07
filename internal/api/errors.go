package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/joestump/workflows/internal/render"
	"github.com/joestump/workflows/internal/roles"
	"github.com/joestump/workflows/internal/workflow"
)

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeFailure maps a pipeline or render error to its status and code.
func writeFailure(w http.ResponseWriter, err error) {
	var (
		unknownRole   *roles.UnknownRoleError
		completionErr *workflow.CompletionError
		renderErr     *render.RenderError
	)
	switch {
	case errors.Is(err, workflow.ErrEmptyGoal):
		writeError(w, http.StatusBadRequest, "goal is required", "BAD_REQUEST")
	case errors.As(err, &unknownRole):
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("unknown role %q", unknownRole.Name), "UNKNOWN_ROLE")
	case errors.As(err, &completionErr) && errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "completion timed out", "COMPLETION_TIMEOUT")
	case errors.As(err, &completionErr):
		writeError(w, http.StatusBadGateway, "completion failed", "COMPLETION_FAILED")
	case errors.As(err, &renderErr):
		log.Printf("api: render: %v", err)
		writeError(w, http.StatusInternalServerError, "could not render document", "RENDER_FAILED")
	default:
		log.Printf("api: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}
