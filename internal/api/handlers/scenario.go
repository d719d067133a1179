package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pv-feasibility/internal/api/models"
	"pv-feasibility/internal/cache"
	"pv-feasibility/internal/scenario"
)

// ScenarioHandler serves single scenario runs. It owns a bounded
// scenario cache keyed by an input fingerprint, so a dashboard polling
// with unchanged inputs does not recompute.
type ScenarioHandler struct {
	cache *cache.Store
}

// NewScenarioHandler creates the handler with a cache of the given size.
func NewScenarioHandler(cacheSize int) *ScenarioHandler {
	return &ScenarioHandler{cache: cache.New(cacheSize)}
}

// Run handles POST /api/v1/scenario.
func (h *ScenarioHandler) Run(c *gin.Context) {
	var req models.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	in, err := buildSpec(req.Params, req.Series)
	if err != nil {
		writeError(c, err)
		return
	}

	key := cache.Fingerprint(in)
	if sc, ok := h.cache.Get(key); ok {
		c.JSON(http.StatusOK, models.ScenarioResponse{
			Summary: models.NewSummaryPayload(sc.Summary),
			Tables:  models.NewTablePayloads(sc.Tables()),
			Cached:  true,
		})
		return
	}

	sc, err := scenario.Build(in)
	if err != nil {
		writeError(c, err)
		return
	}
	h.cache.Put(key, sc)

	c.JSON(http.StatusOK, models.ScenarioResponse{
		Summary: models.NewSummaryPayload(sc.Summary),
		Tables:  models.NewTablePayloads(sc.Tables()),
	})
}
