package http

import (
	"errors"
	"net/http"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/query"
	"admin-datagrid/pkg/response"
)

var errEmptyBody = errors.New("request body is required")

// mapError translates use-case errors into HTTP errors. Unknown errors pass
// through and become a 500.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, fixture.ErrUnknownCollection),
		errors.Is(err, fixture.ErrRecordNotFound):
		return response.NewHTTPError(http.StatusNotFound, "Record not found")
	case errors.Is(err, fixture.ErrReadOnly):
		return response.NewHTTPError(http.StatusMethodNotAllowed, "This collection is read-only")
	case errors.Is(err, fixture.ErrDuplicateSKU):
		return response.NewHTTPError(http.StatusConflict, "SKU already exists")
	case errors.Is(err, fixture.ErrNoImage):
		return response.NewHTTPError(http.StatusConflict, "Product has no image")
	case errors.Is(err, fixture.ErrInvalidPayload),
		errors.Is(err, query.ErrInvalidParams),
		errors.Is(err, query.ErrDateRange),
		errors.Is(err, query.ErrUnknownFacet):
		return response.BadRequest(err)
	}
	return err
}
