package controllers

import (
	"net/http"
	"strings"

	"github.com/oscarvaldez-dev/pricepulse-backend/api/responses"
	"github.com/oscarvaldez-dev/pricepulse-backend/api/validators"
	batchsvc "github.com/oscarvaldez-dev/pricepulse-backend/internal/batch"
	pricingsvc "github.com/oscarvaldez-dev/pricepulse-backend/internal/pricing"
	pkgerrors "github.com/oscarvaldez-dev/pricepulse-backend/pkg/errors"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
)

type analyzeRequest struct {
	ProductName  string  `json:"product_name" validate:"required"`
	CurrentPrice float64 `json:"current_price" validate:"required,gt=0"`
}

// AnalyzeProduct handles single-product analysis.
func AnalyzeProduct(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload analyzeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		analysis, err := svc.AnalyzeProduct(r.Context(), pricingsvc.AnalyzeInput{
			ProductName:  strings.TrimSpace(payload.ProductName),
			CurrentPrice: payload.CurrentPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, analysis)
	}
}

type batchRequest struct {
	Rows []batchsvc.Row `json:"rows" validate:"required,min=1"`
}

// EnrichBatch handles whole-table enrichment.
func EnrichBatch(orch *batchsvc.Orchestrator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if orch == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch pipeline unavailable"))
			return
		}

		var payload batchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := orch.Enrich(r.Context(), payload.Rows)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
