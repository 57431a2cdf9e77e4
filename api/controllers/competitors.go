package controllers

import (
	"net/http"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/responses"
	"github.com/oscarvaldez-dev/pricepulse-backend/api/validators"
	pricingsvc "github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
)

// Competitors returns the parsed competitor listing summary for one product.
func Competitors(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		product, err := validators.RequireQuery(r, "product")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Competitors(r.Context(), product)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
