package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pv-feasibility/internal/api/models"
	"pv-feasibility/internal/model"
	"pv-feasibility/internal/sweep"
)

// SweepHandler serves capacity sweeps and 2-D sensitivity runs.
type SweepHandler struct{}

// NewSweepHandler creates the handler.
func NewSweepHandler() *SweepHandler {
	return &SweepHandler{}
}

// RunCapacity handles POST /api/v1/sweep. The request context cancels
// in-flight grid evaluation when the client goes away.
func (h *SweepHandler) RunCapacity(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in, err := buildSpec(req.Params, req.Series)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := sweep.Capacity(c.Request.Context(), in,
		req.Sweep.MinCapacityKWp, req.Sweep.MaxCapacityKWp,
		req.Sweep.Steps, req.Sweep.LogScale)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewSweepResponse(res))
}

// RunSensitivity handles POST /api/v1/sensitivity.
func (h *SweepHandler) RunSensitivity(c *gin.Context) {
	var req models.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	variable, err := model.ParseVariable(req.Secondary.Variable)
	if err != nil {
		writeError(c, err)
		return
	}

	in, err := buildSpec(req.Params, req.Series)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := sweep.Sensitivity(c.Request.Context(), in, sweep.SensitivitySpec{
		Variable:    variable,
		SecMin:      req.Secondary.Min,
		SecMax:      req.Secondary.Max,
		SecSteps:    req.Secondary.Steps,
		CapMin:      req.Sweep.MinCapacityKWp,
		CapMax:      req.Sweep.MaxCapacityKWp,
		CapSteps:    req.Sweep.Steps,
		CapLogScale: req.Sweep.LogScale,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewSensitivityResponse(res))
}
