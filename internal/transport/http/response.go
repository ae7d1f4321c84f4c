// Package http exposes the aggregation services over a chi router with
// JSON responses.
package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"yhstat/internal/apierrors"
	"yhstat/internal/dataset"
	"yhstat/internal/services"
)

// dataResponse is the envelope for successful responses.
type dataResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
	Data   any    `json:"data"`
}

func respond(w http.ResponseWriter, r *http.Request, data any, count int) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, dataResponse{Status: "success", Count: count, Data: data})
}

// renderError maps service errors onto the API error envelope.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, services.ErrCountyNotFound),
		errors.Is(err, services.ErrProviderNotFound),
		errors.Is(err, services.ErrYearNotFound):
		apiErr = apierrors.NotFound(err.Error())
	case errors.Is(err, services.ErrNoData):
		apiErr = apierrors.New(http.StatusServiceUnavailable, "no_data", err.Error())
	case dataset.IsSchemaError(err):
		apiErr = apierrors.NewWithDetails(http.StatusUnprocessableEntity,
			"schema_error", "loaded dataset is missing required columns", err.Error())
	default:
		apiErr = apierrors.Internal(err)
	}
	render.Render(w, r, apiErr)
}
