package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cleanarchmvc/catalog/domain"
)

// Failure maps a service error to a response. Validation errors keep their
// message, notFound becomes 404 with notFoundMsg and everything else is
// logged and answered with a 500 carrying failMsg.
func Failure(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, notFound error, notFoundMsg, failMsg string) {
	switch {
	case domain.IsValidationError(err):
		ErrorResponse(w, http.StatusBadRequest, err.Error())
	case notFound != nil && errors.Is(err, notFound):
		ErrorResponse(w, http.StatusNotFound, notFoundMsg)
	default:
		log.ErrorContext(r.Context(), failMsg, slog.Any("error", err))
		ErrorResponse(w, http.StatusInternalServerError, failMsg)
	}
}
