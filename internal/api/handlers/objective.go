package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pv-feasibility/internal/api/models"
	"pv-feasibility/internal/model"
	"pv-feasibility/internal/sweep"
)

// ObjectiveHandler serves single objective-adapter evaluations for an
// externally hosted optimiser.
type ObjectiveHandler struct{}

// NewObjectiveHandler creates the handler.
func NewObjectiveHandler() *ObjectiveHandler {
	return &ObjectiveHandler{}
}

// Evaluate handles POST /api/v1/objective.
func (h *ObjectiveHandler) Evaluate(c *gin.Context) {
	var req models.ObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in, err := buildSpec(req.Params, req.Series)
	if err != nil {
		writeError(c, err)
		return
	}

	value, err := sweep.Evaluate(in,
		model.Variable(req.Variable),
		sweep.Metric(req.Metric),
		sweep.Strategy(req.Strategy),
		req.Value, req.Goal)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ObjectiveResponse{Value: value})
}
