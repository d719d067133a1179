package model

import (
	"fmt"
	"math"
	"sort"
)

// Variable names a mutable scalar input field. Keep these values stable;
// they appear in API requests and CLI flags.
type Variable string

const (
	VarStudyPeriod      Variable = "study_period"
	VarDiscountRate     Variable = "discount_rate"
	VarPVCapacity       Variable = "pv_capacity"
	VarPVDegradation    Variable = "pv_degradation"
	VarDevEx            Variable = "devex"
	VarCapEx            Variable = "capex"
	VarOpEx             Variable = "opex"
	VarOpExEscalation   Variable = "opex_escalation"
	VarLoanFraction     Variable = "loan_fraction"
	VarLoanPeriod       Variable = "loan_period"
	VarLoanRate         Variable = "loan_rate"
	VarImportTariff     Variable = "import_tariff"
	VarExportTariff     Variable = "export_tariff"
	VarImportEscalation Variable = "import_escalation"
	VarExportEscalation Variable = "export_escalation"
)

type varField struct {
	set  func(*InputSpec, float64)
	unit func(*InputSpec) string
}

// varFields is the setter lookup table. An unknown Variable is rejected
// at the boundary instead of falling through to a default branch.
var varFields = map[Variable]varField{
	VarStudyPeriod: {
		set:  func(in *InputSpec, v float64) { in.StudyPeriod.Value = int(math.Round(v)) },
		unit: func(in *InputSpec) string { return in.StudyPeriod.Unit },
	},
	VarDiscountRate: {
		set:  func(in *InputSpec, v float64) { in.DiscountRate.Value = v },
		unit: func(in *InputSpec) string { return in.DiscountRate.Unit },
	},
	VarPVCapacity: {
		set:  func(in *InputSpec, v float64) { in.PVCapacity.Value = v },
		unit: func(in *InputSpec) string { return in.PVCapacity.Unit },
	},
	VarPVDegradation: {
		set:  func(in *InputSpec, v float64) { in.PVDegradation.Value = v },
		unit: func(in *InputSpec) string { return in.PVDegradation.Unit },
	},
	VarDevEx: {
		set:  func(in *InputSpec, v float64) { in.DevEx.Value = v },
		unit: func(in *InputSpec) string { return in.DevEx.Unit },
	},
	VarCapEx: {
		set:  func(in *InputSpec, v float64) { in.CapEx.Value = v },
		unit: func(in *InputSpec) string { return in.CapEx.Unit },
	},
	VarOpEx: {
		set:  func(in *InputSpec, v float64) { in.OpEx.Value = v },
		unit: func(in *InputSpec) string { return in.OpEx.Unit },
	},
	VarOpExEscalation: {
		set:  func(in *InputSpec, v float64) { in.OpExEscalation.Value = v },
		unit: func(in *InputSpec) string { return in.OpExEscalation.Unit },
	},
	VarLoanFraction: {
		set:  func(in *InputSpec, v float64) { in.LoanFraction.Value = v },
		unit: func(in *InputSpec) string { return in.LoanFraction.Unit },
	},
	VarLoanPeriod: {
		set:  func(in *InputSpec, v float64) { in.LoanPeriod.Value = int(math.Round(v)) },
		unit: func(in *InputSpec) string { return in.LoanPeriod.Unit },
	},
	VarLoanRate: {
		set:  func(in *InputSpec, v float64) { in.LoanRate.Value = v },
		unit: func(in *InputSpec) string { return in.LoanRate.Unit },
	},
	VarImportTariff: {
		set:  func(in *InputSpec, v float64) { in.ImportTariff.Value = v },
		unit: func(in *InputSpec) string { return in.ImportTariff.Unit },
	},
	VarExportTariff: {
		set:  func(in *InputSpec, v float64) { in.ExportTariff.Value = v },
		unit: func(in *InputSpec) string { return in.ExportTariff.Unit },
	},
	VarImportEscalation: {
		set:  func(in *InputSpec, v float64) { in.ImportEscalation.Value = v },
		unit: func(in *InputSpec) string { return in.ImportEscalation.Unit },
	},
	VarExportEscalation: {
		set:  func(in *InputSpec, v float64) { in.ExportEscalation.Value = v },
		unit: func(in *InputSpec) string { return in.ExportEscalation.Unit },
	},
}

// ParseVariable validates a variable name from an external boundary.
func ParseVariable(s string) (Variable, error) {
	v := Variable(s)
	if _, ok := varFields[v]; !ok {
		return "", fmt.Errorf("%w: unknown variable %q (known: %v)", ErrInvalidArgument, s, Variables())
	}
	return v, nil
}

// Variables lists the mutable variables in stable order.
func Variables() []Variable {
	out := make([]Variable, 0, len(varFields))
	for v := range varFields {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsPercent reports whether the variable carries a "%" unit tag, meaning
// externally supplied values are 0-100 and must be divided by 100 before
// assignment.
func (v Variable) IsPercent(in *InputSpec) bool {
	f, ok := varFields[v]
	if !ok {
		return false
	}
	return f.unit(in) == "%"
}

// With returns a copy of the spec with the named variable replaced.
// Integer-valued fields are rounded to the nearest whole number.
func (in *InputSpec) With(v Variable, value float64) (*InputSpec, error) {
	f, ok := varFields[v]
	if !ok {
		return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidArgument, string(v))
	}
	out := in.Clone()
	f.set(out, value)
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
