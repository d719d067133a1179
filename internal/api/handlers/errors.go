package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pv-feasibility/internal/api/models"
	"pv-feasibility/internal/model"
	"pv-feasibility/internal/scenario"
)

// writeError maps engine errors onto the failure taxonomy. Unknown
// errors are internal; everything else carries a stable code the
// presentation layer can translate.
func writeError(c *gin.Context, err error) {
	var status int
	var code string
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		status, code = http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, model.ErrShapeMismatch):
		status, code = http.StatusBadRequest, "SHAPE_MISMATCH"
	case errors.Is(err, model.ErrDegenerateInput):
		status, code = http.StatusUnprocessableEntity, "DEGENERATE_INPUT"
	case errors.Is(err, scenario.ErrIRRNoSignChange),
		errors.Is(err, scenario.ErrIRRNoConvergence):
		status, code = http.StatusUnprocessableEntity, "NON_CONVERGENCE"
	default:
		status, code = http.StatusInternalServerError, "INTERNAL_ERROR"
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
	})
}

// buildSpec assembles the input specification from a request payload.
func buildSpec(params models.ParamsPayload, series models.SeriesPayload) (*model.InputSpec, error) {
	return model.NewInputSpec(series.Load, series.RefYield, params.ToParams())
}
