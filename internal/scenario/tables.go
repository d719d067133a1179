package scenario

// HourlyBalance is the hourly energy balance for one study year.
// All columns are kWh per hour and share the 8760-hour index of the
// input series. Invariants, per hour:
//
//	PVSelfCons = min(Load, PVTotal)
//	Load       = PVSelfCons + GridImport
//	PVTotal    = PVSelfCons + GridExport
type HourlyBalance struct {
	Load       []float64
	PVTotal    []float64
	PVSelfCons []float64
	GridImport []float64
	GridExport []float64
}

// YearSummary is one row of the annual energy-balance summary.
// Energy quantities are MWh; the fractions are 0-1.
type YearSummary struct {
	Year int

	LoadMWh       float64
	PVTotalMWh    float64
	PVSelfConsMWh float64
	GridImportMWh float64
	GridExportMWh float64

	SelfConsFraction    float64 // PVSelfCons / Load
	UtilisationFraction float64 // PVSelfCons / PVTotal
}

// CashflowRow is one row of the cashflow (or discounted cashflow)
// table. Year 0 carries only the equity outlay; energy and tariff
// columns are zero there.
type CashflowRow struct {
	Year int

	LoadMWh       float64
	PVTotalMWh    float64
	PVSelfConsMWh float64
	GridImportMWh float64
	GridExportMWh float64

	ImportTariff   float64 // currency/kWh, escalated to this year
	ExportTariff   float64
	CombinedTariff float64 // utilisation-weighted blend of import/export

	ImportCost    float64 // currency
	ExportRevenue float64
	PVRevenue     float64

	OpEx        float64
	LoanPayment float64

	Cashflow    float64
	CashBalance float64 // running total seeded from year 0
}

// Summary is the one-row metrics output of a scenario run.
// Percentages are 0-100 here (reporting convention); LCOE and BLCOE are
// currency per MWh.
type Summary struct {
	PVCapacityKWp float64

	LoadMWh       float64
	PVTotalMWh    float64
	PVSelfConsMWh float64
	GridImportMWh float64
	GridExportMWh float64

	SelfConsPct    float64
	UtilisationPct float64

	CapEx    float64 // total capital cost, currency
	MeanOpEx float64 // mean annual opex over the study period

	LCOE  float64
	BLCOE float64
	NPV   float64

	// IRR is a percentage. NaN when the cashflow stream admits no IRR
	// or the root-find failed; IRRConverged distinguishes the two cases
	// from a legitimate value.
	IRR          float64
	IRRConverged bool

	PaybackYears float64
}
