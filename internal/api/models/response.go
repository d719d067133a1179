package models

import (
	"math"

	"pv-feasibility/internal/scenario"
	"pv-feasibility/internal/sweep"
)

// ErrorDetail carries a stable machine-readable code plus a message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SummaryPayload is the JSON shape of a scenario summary row. IRR is a
// pointer because NaN (no IRR exists) has no JSON representation; null
// plus irr_converged=false marks the undefined case.
type SummaryPayload struct {
	PVCapacityKWp float64 `json:"pv_capacity_kwp"`

	LoadMWh       float64 `json:"load_mwh"`
	PVTotalMWh    float64 `json:"pv_total_mwh"`
	PVSelfConsMWh float64 `json:"pv_self_cons_mwh"`
	GridImportMWh float64 `json:"grid_import_mwh"`
	GridExportMWh float64 `json:"grid_export_mwh"`

	SelfConsPct    float64 `json:"self_cons_pct"`
	UtilisationPct float64 `json:"utilisation_pct"`

	CapEx    float64 `json:"capex"`
	MeanOpEx float64 `json:"mean_opex"`

	LCOE  float64 `json:"lcoe"`
	BLCOE float64 `json:"blcoe"`
	NPV   float64 `json:"npv"`

	IRR          *float64 `json:"irr"`
	IRRConverged bool     `json:"irr_converged"`

	PaybackYears float64 `json:"payback_years"`
}

// NewSummaryPayload converts an engine summary for transport.
func NewSummaryPayload(s scenario.Summary) SummaryPayload {
	out := SummaryPayload{
		PVCapacityKWp:  s.PVCapacityKWp,
		LoadMWh:        s.LoadMWh,
		PVTotalMWh:     s.PVTotalMWh,
		PVSelfConsMWh:  s.PVSelfConsMWh,
		GridImportMWh:  s.GridImportMWh,
		GridExportMWh:  s.GridExportMWh,
		SelfConsPct:    s.SelfConsPct,
		UtilisationPct: s.UtilisationPct,
		CapEx:          s.CapEx,
		MeanOpEx:       s.MeanOpEx,
		LCOE:           s.LCOE,
		BLCOE:          s.BLCOE,
		NPV:            s.NPV,
		IRRConverged:   s.IRRConverged,
		PaybackYears:   s.PaybackYears,
	}
	if !math.IsNaN(s.IRR) {
		irr := s.IRR
		out.IRR = &irr
	}
	return out
}

// TablePayload is one rendered export table.
type TablePayload struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// ScenarioResponse is the body returned by POST /api/v1/scenario.
type ScenarioResponse struct {
	Summary SummaryPayload `json:"summary"`
	Tables  []TablePayload `json:"tables"`
	Cached  bool           `json:"cached"`
}

// NewTablePayloads converts the fixed-order export surface.
func NewTablePayloads(tables []scenario.Table) []TablePayload {
	out := make([]TablePayload, len(tables))
	for i, t := range tables {
		out[i] = TablePayload{Name: t.Name, Header: t.Header, Rows: t.Rows}
	}
	return out
}

// SweepResponse is the body returned by POST /api/v1/sweep.
type SweepResponse struct {
	Capacities []int            `json:"capacities"`
	Aggregate  []SummaryPayload `json:"aggregate"`
	Best       SummaryPayload   `json:"best"`
}

// NewSweepResponse converts a capacity sweep result.
func NewSweepResponse(r *sweep.CapacityResult) SweepResponse {
	agg := make([]SummaryPayload, len(r.Aggregate))
	for i, s := range r.Aggregate {
		agg[i] = NewSummaryPayload(s)
	}
	return SweepResponse{
		Capacities: r.Capacities,
		Aggregate:  agg,
		Best:       NewSummaryPayload(r.Best.Summary),
	}
}

// SensitivityEntry pairs one secondary value with its capacity sweep.
type SensitivityEntry struct {
	Value float64       `json:"value"`
	Sweep SweepResponse `json:"sweep"`
}

// SensitivityResponse is the body returned by POST /api/v1/sensitivity.
type SensitivityResponse struct {
	Variable string             `json:"variable"`
	Entries  []SensitivityEntry `json:"entries"`
}

// NewSensitivityResponse converts a sensitivity result, preserving the
// secondary grid order.
func NewSensitivityResponse(r *sweep.SensitivityResult) SensitivityResponse {
	entries := make([]SensitivityEntry, 0, len(r.Grid))
	for _, v := range r.Grid {
		entries = append(entries, SensitivityEntry{
			Value: v,
			Sweep: NewSweepResponse(r.Sweeps[v]),
		})
	}
	return SensitivityResponse{
		Variable: string(r.Variable),
		Entries:  entries,
	}
}

// ObjectiveResponse is the body returned by POST /api/v1/objective.
type ObjectiveResponse struct {
	Value float64 `json:"value"`
}
