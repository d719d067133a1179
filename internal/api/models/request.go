package models

import "pv-feasibility/internal/model"

// ParamsPayload mirrors the scalar parameter set. %-quantities travel
// on the human 0-100 scale (discount_rate_pct: 4 means 4%) and are
// converted to decimals at this boundary.
type ParamsPayload struct {
	RefCapacityKWp  float64 `json:"ref_capacity_kwp"`
	PostprocLossPct float64 `json:"postproc_loss_pct"`

	StudyPeriodYears int     `json:"study_period_years" binding:"required"`
	DiscountRatePct  float64 `json:"discount_rate_pct"`

	PVCapacityKWp    float64 `json:"pv_capacity_kwp"`
	PVDegradationPct float64 `json:"pv_degradation_pct"`

	Currency     string  `json:"currency,omitempty"`
	DevExPerKWp  float64 `json:"devex_per_kwp"`
	CapExPerKWp  float64 `json:"capex_per_kwp"`
	OpExPerKWp   float64 `json:"opex_per_kwp"`

	OpExEscalationPct float64 `json:"opex_escalation_pct"`

	LoanPct         float64 `json:"loan_pct"`
	LoanPeriodYears int     `json:"loan_period_years"`
	LoanRatePct     float64 `json:"loan_rate_pct"`

	ImportTariffPerKWh  float64 `json:"import_tariff_per_kwh"`
	ExportTariffPerKWh  float64 `json:"export_tariff_per_kwh"`
	ImportEscalationPct float64 `json:"import_escalation_pct"`
	ExportEscalationPct float64 `json:"export_escalation_pct"`
}

// ToParams converts to engine parameters. A zero reference capacity
// falls back to the stock default so minimal requests stay short.
func (p ParamsPayload) ToParams() model.Params {
	out := model.Params{
		RefCapacityKWp:   p.RefCapacityKWp,
		PostprocLoss:     p.PostprocLossPct / 100,
		StudyPeriodYears: p.StudyPeriodYears,
		DiscountRate:     p.DiscountRatePct / 100,
		PVCapacityKWp:    p.PVCapacityKWp,
		PVDegradation:    p.PVDegradationPct / 100,
		Currency:         model.Currency(p.Currency),
		DevEx:            p.DevExPerKWp,
		CapEx:            p.CapExPerKWp,
		OpEx:             p.OpExPerKWp,
		OpExEscalation:   p.OpExEscalationPct / 100,
		LoanFraction:     p.LoanPct / 100,
		LoanPeriodYears:  p.LoanPeriodYears,
		LoanRate:         p.LoanRatePct / 100,
		ImportTariff:     p.ImportTariffPerKWh,
		ExportTariff:     p.ExportTariffPerKWh,
		ImportEscalation: p.ImportEscalationPct / 100,
		ExportEscalation: p.ExportEscalationPct / 100,
	}
	if out.RefCapacityKWp == 0 {
		out.RefCapacityKWp = model.DefaultParams().RefCapacityKWp
	}
	return out
}

// SeriesPayload carries the two raw annual hourly series as JSON
// arrays, 8760 values each.
type SeriesPayload struct {
	Load     []float64 `json:"load" binding:"required"`
	RefYield []float64 `json:"ref_yield" binding:"required"`
}

// ScenarioRequest is the body of POST /api/v1/scenario.
type ScenarioRequest struct {
	Params ParamsPayload `json:"params" binding:"required"`
	Series SeriesPayload `json:"series" binding:"required"`
}

// SweepSpecPayload defines the capacity grid.
type SweepSpecPayload struct {
	MinCapacityKWp float64 `json:"min_capacity_kwp" binding:"required"`
	MaxCapacityKWp float64 `json:"max_capacity_kwp" binding:"required"`
	Steps          int     `json:"steps" binding:"required"`
	LogScale       bool    `json:"log_scale"`
}

// SweepRequest is the body of POST /api/v1/sweep.
type SweepRequest struct {
	Params ParamsPayload    `json:"params" binding:"required"`
	Series SeriesPayload    `json:"series" binding:"required"`
	Sweep  SweepSpecPayload `json:"sweep" binding:"required"`
}

// SecondaryPayload defines the secondary-variable grid for a
// sensitivity run. %-unit variables use the 0-100 scale.
type SecondaryPayload struct {
	Variable string  `json:"variable" binding:"required"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Steps    int     `json:"steps" binding:"required"`
}

// SensitivityRequest is the body of POST /api/v1/sensitivity.
type SensitivityRequest struct {
	Params    ParamsPayload    `json:"params" binding:"required"`
	Series    SeriesPayload    `json:"series" binding:"required"`
	Sweep     SweepSpecPayload `json:"sweep" binding:"required"`
	Secondary SecondaryPayload `json:"secondary" binding:"required"`
}

// ObjectiveRequest is the body of POST /api/v1/objective: one
// evaluation of the objective adapter at a mutated value.
type ObjectiveRequest struct {
	Params   ParamsPayload `json:"params" binding:"required"`
	Series   SeriesPayload `json:"series" binding:"required"`
	Variable string        `json:"variable" binding:"required"`
	Metric   string        `json:"metric" binding:"required"`
	Strategy string        `json:"strategy" binding:"required"`
	Value    float64       `json:"value"`
	Goal     float64       `json:"goal,omitempty"`
}
