package controllers

import (
	"net/http"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/responses"
	"github.com/oscarvaldez-dev/pricepulse-backend/api/validators"
	"github.com/oscarvaldez-dev/pricepulse-backend/internal/documents"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
)

type extractRequest struct {
	Text string `json:"text" validate:"required"`
}

// ExtractFinancials pulls headline financial figures out of pasted report text.
func ExtractFinancials(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload extractRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		metrics := documents.ExtractFinancials(payload.Text)
		responses.WriteSuccess(w, map[string]any{"metrics": metrics})
	}
}
