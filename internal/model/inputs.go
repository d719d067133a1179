package model

import "fmt"

// Currency is the reporting currency tag.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Params is the scalar techno-economic parameter set. All "%"-unit
// quantities are decimals (0.04 = 4%), never 0-100.
type Params struct {
	RefCapacityKWp float64 // capacity of the reference installation the yield series was produced for
	PostprocLoss   float64 // fraction of reference yield lost to post-processing

	StudyPeriodYears int
	DiscountRate     float64

	PVCapacityKWp float64
	PVDegradation float64 // annual linear output decline, fraction

	Currency Currency
	DevEx    float64 // currency per kWp
	CapEx    float64 // currency per kWp
	OpEx     float64 // currency per kWp per year

	OpExEscalation float64

	LoanFraction    float64 // fraction of total investment financed by loan
	LoanPeriodYears int
	LoanRate        float64

	ImportTariff     float64 // currency per kWh
	ExportTariff     float64 // currency per kWh
	ImportEscalation float64
	ExportEscalation float64
}

// DefaultParams returns the stock pre-feasibility assumptions.
func DefaultParams() Params {
	return Params{
		RefCapacityKWp:   10000,
		PostprocLoss:     0.03,
		StudyPeriodYears: 25,
		DiscountRate:     0.04,
		PVCapacityKWp:    1000,
		PVDegradation:    0.005,
		Currency:         CurrencyUSD,
		DevEx:            0,
		CapEx:            700,
		OpEx:             15,
		OpExEscalation:   0,
		LoanFraction:     0,
		LoanPeriodYears:  0,
		LoanRate:         0,
		ImportTariff:     0.10,
		ExportTariff:     0.05,
		ImportEscalation: 0,
		ExportEscalation: 0,
	}
}

// InputSpec is the full, unit-tagged input bundle for one scenario run.
// It is a value type: construct it once, then derive variants with Clone
// or With. Nothing mutates a spec that has been handed to the engine.
type InputSpec struct {
	Load          UnitValue[HourlySeries]
	RefYield      UnitValue[HourlySeries]
	RefCapacity   UnitValue[float64]
	PostprocLoss  UnitValue[float64]
	SpecificYield UnitValue[HourlySeries]

	StudyPeriod  UnitValue[int]
	DiscountRate UnitValue[float64]

	PVCapacity    UnitValue[float64]
	PVDegradation UnitValue[float64]

	Currency UnitValue[Currency]
	DevEx    UnitValue[float64]
	CapEx    UnitValue[float64]
	OpEx     UnitValue[float64]

	OpExEscalation UnitValue[float64]

	LoanFraction UnitValue[float64]
	LoanPeriod   UnitValue[int]
	LoanRate     UnitValue[float64]

	ImportTariff     UnitValue[float64]
	ExportTariff     UnitValue[float64]
	ImportEscalation UnitValue[float64]
	ExportEscalation UnitValue[float64]
}

// NewInputSpec builds and validates an InputSpec from raw series and
// scalar parameters. The specific-yield series is derived here once and
// reused for every capacity the spec is later re-run at.
func NewInputSpec(load, refYield HourlySeries, p Params) (*InputSpec, error) {
	sy, err := NormalizeYield(refYield, load, p.RefCapacityKWp, p.PostprocLoss)
	if err != nil {
		return nil, err
	}

	cur := p.Currency
	if cur == "" {
		cur = CurrencyUSD
	}
	perKWp := fmt.Sprintf("%s/kWp", cur)
	perKWh := fmt.Sprintf("%s/kWh", cur)

	in := &InputSpec{
		Load:          Unit("Load", "kWh", load.Clone()),
		RefYield:      Unit("Reference yield", "kWh", refYield.Clone()),
		RefCapacity:   Unit("Reference capacity", "kWp", p.RefCapacityKWp),
		PostprocLoss:  Unit("Post-processing losses", "%", p.PostprocLoss),
		SpecificYield: Unit("Reference specific yield", "kWh/kWp", sy),

		StudyPeriod:  Unit("Study period", "yrs", p.StudyPeriodYears),
		DiscountRate: Unit("Discount rate", "%", p.DiscountRate),

		PVCapacity:    Unit("PV capacity", "kWp", p.PVCapacityKWp),
		PVDegradation: Unit("PV degradation", "%", p.PVDegradation),

		Currency: Unit("Currency", "NA", cur),
		DevEx:    Unit("DevEx", perKWp, p.DevEx),
		CapEx:    Unit("CapEx", perKWp, p.CapEx),
		OpEx:     Unit("OpEx", perKWp, p.OpEx),

		OpExEscalation: Unit("OpEx increase", "%", p.OpExEscalation),

		LoanFraction: Unit("Loan", "%", p.LoanFraction),
		LoanPeriod:   Unit("Loan period", "yrs", p.LoanPeriodYears),
		LoanRate:     Unit("Loan interest rate", "%", p.LoanRate),

		ImportTariff:     Unit("Import tariff", perKWh, p.ImportTariff),
		ExportTariff:     Unit("Export tariff", perKWh, p.ExportTariff),
		ImportEscalation: Unit("Import increase", "%", p.ImportEscalation),
		ExportEscalation: Unit("Export increase", "%", p.ExportEscalation),
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

// Validate checks scalar ranges. Degenerate energy totals (zero load,
// zero PV output) are checked by the engine, which owns the quantities
// they would divide.
func (in *InputSpec) Validate() error {
	if in.StudyPeriod.Value < 1 {
		return fmt.Errorf("%w: study period must be >= 1 year", ErrInvalidArgument)
	}
	if in.PVCapacity.Value < 0 {
		return fmt.Errorf("%w: PV capacity must be >= 0", ErrInvalidArgument)
	}
	if in.PVDegradation.Value < 0 || in.PVDegradation.Value > 1 {
		return fmt.Errorf("%w: PV degradation must be in [0, 1]", ErrInvalidArgument)
	}
	if in.LoanFraction.Value < 0 || in.LoanFraction.Value > 1 {
		return fmt.Errorf("%w: loan fraction must be in [0, 1]", ErrInvalidArgument)
	}
	if in.LoanPeriod.Value < 0 {
		return fmt.Errorf("%w: loan period must be >= 0", ErrInvalidArgument)
	}
	if in.LoanFraction.Value > 0 && in.LoanPeriod.Value < 1 {
		return fmt.Errorf("%w: loan period must be >= 1 when a loan fraction is set", ErrInvalidArgument)
	}
	return nil
}

// Clone returns a deep copy. Series are copied so derived specs never
// alias the originals.
func (in *InputSpec) Clone() *InputSpec {
	out := *in
	out.Load.Value = in.Load.Value.Clone()
	out.RefYield.Value = in.RefYield.Value.Clone()
	out.SpecificYield.Value = in.SpecificYield.Value.Clone()
	return &out
}

// WithCapacity returns a copy of the spec with the PV capacity replaced.
func (in *InputSpec) WithCapacity(kwp float64) *InputSpec {
	out := in.Clone()
	out.PVCapacity.Value = kwp
	return out
}
