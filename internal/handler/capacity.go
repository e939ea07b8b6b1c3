package handler

import (
	"errors"

	"github.com/deppfellow/capacity-api/internal/errs"
	"github.com/deppfellow/capacity-api/internal/model"
	"github.com/deppfellow/capacity-api/internal/server"
	"github.com/deppfellow/capacity-api/internal/service"
	"github.com/deppfellow/capacity-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// GetCapacityRequest holds the query parameters of GET /capacity.
type GetCapacityRequest struct {
	DateFrom string `query:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `query:"date_to" validate:"required,datetime=2006-01-02"`
}

// NewGetCapacityRequest allocates an empty request for binding.
func NewGetCapacityRequest() *GetCapacityRequest {
	return &GetCapacityRequest{}
}

func (r *GetCapacityRequest) Validate() error {
	return validation.Struct(r)
}

// DateRange converts the validated parameters. Order is not checked here.
func (r *GetCapacityRequest) DateRange() (model.DateRange, error) {
	from, err := model.ParseDate(r.DateFrom)
	if err != nil {
		return model.DateRange{}, err
	}
	to, err := model.ParseDate(r.DateTo)
	if err != nil {
		return model.DateRange{}, err
	}
	return model.NewDateRange(from, to), nil
}

type CapacityHandler struct {
	Handler
	capacityService *service.CapacityService
}

func NewCapacityHandler(s *server.Server, capacityService *service.CapacityService) *CapacityHandler {
	return &CapacityHandler{
		Handler:         NewHandler(s),
		capacityService: capacityService,
	}
}

// GetCapacity returns the weekly offered capacity for the requested window.
//
//   - inverted range: 400 {"detail": "date_from must be <= date_to"}
//   - query failure: 500 with the failure message as detail
//   - no rows: 200 []
func (h *CapacityHandler) GetCapacity(c echo.Context, req *GetCapacityRequest) ([]model.CapacityRecord, error) {
	dr, err := req.DateRange()
	if err != nil {
		return nil, errs.ValidationError(err)
	}

	records, err := h.capacityService.GetCapacity(c.Request().Context(), dr)
	if err != nil {
		if errors.Is(err, model.ErrInvalidDateRange) {
			return nil, errs.NewBadRequestError(err.Error(), nil, nil).WithCause(err)
		}
		return nil, errs.NewInternalServerError(err.Error()).WithCause(err)
	}

	if records == nil {
		records = []model.CapacityRecord{}
	}

	return records, nil
}
