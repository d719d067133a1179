package scenario

import (
	"fmt"
	"math"

	"pv-feasibility/internal/model"
)

// Scenario is an InputSpec plus the four derived artifacts. Build
// computes everything once; nothing here is mutated afterwards.
type Scenario struct {
	Inputs *model.InputSpec

	// EnergyBalance maps study year (1..N) to the hourly balance table.
	// Nil when built with WithoutHourlyDetail.
	EnergyBalance map[int]*HourlyBalance

	// EnergySummary has one row per study year, index 0 = year 1.
	EnergySummary []YearSummary

	// Cashflow and Discounted are indexed by year, 0..N.
	Cashflow   []CashflowRow
	Discounted []CashflowRow

	Summary Summary
}

type buildOptions struct {
	dropHourly bool
}

// Option configures Build.
type Option func(*buildOptions)

// WithoutHourlyDetail discards the per-hour balance tables after the
// annual summaries are computed. Sweeps use this: a 2-D sensitivity run
// holds every inner scenario, and 25 years of hourly tables per grid
// point would dominate memory. Summary and cashflow outputs are
// unaffected.
func WithoutHourlyDetail() Option {
	return func(o *buildOptions) { o.dropHourly = true }
}

// Build runs the four-stage pipeline: hourly energy balance, annual
// summary, cashflow, discounted cashflow, then the metrics row. It is a
// pure function of the spec: identical inputs produce bit-identical
// outputs.
func Build(in *model.InputSpec, opts ...Option) (*Scenario, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	totalLoad := in.Load.Value.Sum()
	if totalLoad == 0 {
		return nil, fmt.Errorf("%w: total load is zero", model.ErrDegenerateInput)
	}
	if in.PVCapacity.Value == 0 || in.SpecificYield.Value.Sum() == 0 {
		return nil, fmt.Errorf("%w: total PV energy is zero", model.ErrDegenerateInput)
	}

	sc := &Scenario{Inputs: in}
	sc.buildEnergyBalance()
	sc.buildCashflow()
	sc.buildDiscountedCashflow()
	sc.buildSummary()

	if o.dropHourly {
		sc.EnergyBalance = nil
	}
	return sc, nil
}

// buildEnergyBalance computes stages 1 and 2: the per-year hourly
// balance and its annual MWh summary.
func (sc *Scenario) buildEnergyBalance() {
	in := sc.Inputs
	years := in.StudyPeriod.Value
	load := in.Load.Value
	sy := in.SpecificYield.Value

	sc.EnergyBalance = make(map[int]*HourlyBalance, years)
	sc.EnergySummary = make([]YearSummary, 0, years)

	for year := 1; year <= years; year++ {
		// Mid-year averaging of linear degradation (~6 months in).
		degradedCap := in.PVCapacity.Value * (1 - in.PVDegradation.Value*(float64(year)-0.5))

		hb := &HourlyBalance{
			Load:       load.Clone(),
			PVTotal:    make([]float64, len(load)),
			PVSelfCons: make([]float64, len(load)),
			GridImport: make([]float64, len(load)),
			GridExport: make([]float64, len(load)),
		}

		var sumLoad, sumPV, sumSelf, sumImport, sumExport float64
		for h := range load {
			pv := sy[h] * degradedCap
			hb.PVTotal[h] = pv

			if pv < load[h] {
				// Shortfall: everything the PV makes is consumed.
				hb.PVSelfCons[h] = pv
				hb.GridImport[h] = load[h] - pv
			} else {
				// Surplus: PV covers the whole load.
				hb.PVSelfCons[h] = load[h]
				hb.GridExport[h] = pv - load[h]
			}

			sumLoad += load[h]
			sumPV += pv
			sumSelf += hb.PVSelfCons[h]
			sumImport += hb.GridImport[h]
			sumExport += hb.GridExport[h]
		}

		sc.EnergyBalance[year] = hb
		sc.EnergySummary = append(sc.EnergySummary, YearSummary{
			Year:                year,
			LoadMWh:             sumLoad / 1000,
			PVTotalMWh:          sumPV / 1000,
			PVSelfConsMWh:       sumSelf / 1000,
			GridImportMWh:       sumImport / 1000,
			GridExportMWh:       sumExport / 1000,
			SelfConsFraction:    sumSelf / sumLoad,
			UtilisationFraction: sumSelf / sumPV,
		})
	}
}

// buildCashflow computes stage 3 over years 0..N. Year 0 is the equity
// outlay only; the loan principal shows up as annuity payments in later
// years, not as a year-0 cash movement.
func (sc *Scenario) buildCashflow() {
	in := sc.Inputs
	years := in.StudyPeriod.Value
	totalInvestment := (in.CapEx.Value + in.DevEx.Value) * in.PVCapacity.Value

	annuityRaw := AnnuityPayment(in.LoanRate.Value, in.LoanPeriod.Value,
		in.LoanFraction.Value*totalInvestment)
	annuity := roundCents(annuityRaw)

	rows := make([]CashflowRow, years+1)
	rows[0] = CashflowRow{
		Year:        0,
		Cashflow:    -totalInvestment * (1 - in.LoanFraction.Value),
		CashBalance: -totalInvestment * (1 - in.LoanFraction.Value),
	}

	for year := 1; year <= years; year++ {
		es := sc.EnergySummary[year-1]
		y := float64(year)

		r := CashflowRow{
			Year:          year,
			LoadMWh:       es.LoadMWh,
			PVTotalMWh:    es.PVTotalMWh,
			PVSelfConsMWh: es.PVSelfConsMWh,
			GridImportMWh: es.GridImportMWh,
			GridExportMWh: es.GridExportMWh,
		}

		r.ImportTariff = in.ImportTariff.Value * math.Pow(1+in.ImportEscalation.Value, y)
		r.ExportTariff = in.ExportTariff.Value * math.Pow(1+in.ExportEscalation.Value, y)
		u := es.UtilisationFraction
		r.CombinedTariff = u*r.ImportTariff + (1-u)*r.ExportTariff

		r.ImportCost = r.ImportTariff * r.GridImportMWh * 1000
		r.ExportRevenue = r.ExportTariff * r.GridExportMWh * 1000
		r.PVRevenue = r.CombinedTariff * r.PVTotalMWh * 1000

		r.OpEx = in.OpEx.Value * math.Pow(1+in.OpExEscalation.Value, y) * in.PVCapacity.Value

		if year <= in.LoanPeriod.Value {
			r.LoanPayment = annuity
		}

		r.Cashflow = -r.OpEx + r.PVRevenue - r.LoanPayment
		r.CashBalance = rows[year-1].CashBalance + r.Cashflow
		rows[year] = r
	}
	sc.Cashflow = rows
}

// buildDiscountedCashflow computes stage 4: the stage-3 table with the
// time value of money applied for year > 0. Energy, cost and opex
// columns are divided by (1+r)^y; PV revenue is then recomputed from the
// (undiscounted) combined tariff and the discounted PV total; the loan
// annuity is re-discounted and re-rounded to cents. Year 0 is untouched.
func (sc *Scenario) buildDiscountedCashflow() {
	in := sc.Inputs
	years := in.StudyPeriod.Value
	totalInvestment := (in.CapEx.Value + in.DevEx.Value) * in.PVCapacity.Value
	annuityRaw := AnnuityPayment(in.LoanRate.Value, in.LoanPeriod.Value,
		in.LoanFraction.Value*totalInvestment)

	disc := make([]CashflowRow, years+1)
	disc[0] = sc.Cashflow[0]

	for year := 1; year <= years; year++ {
		df := math.Pow(1+in.DiscountRate.Value, float64(year))
		d := sc.Cashflow[year]

		d.LoadMWh /= df
		d.PVTotalMWh /= df
		d.PVSelfConsMWh /= df
		d.GridImportMWh /= df
		d.GridExportMWh /= df
		d.ImportCost /= df
		d.ExportRevenue /= df
		d.PVRevenue = d.CombinedTariff * d.PVTotalMWh * 1000
		d.OpEx /= df

		d.LoanPayment = 0
		if year <= in.LoanPeriod.Value {
			d.LoanPayment = roundCents(annuityRaw / df)
		}

		d.Cashflow = -d.OpEx + d.PVRevenue - d.LoanPayment
		d.CashBalance = disc[year-1].CashBalance + d.Cashflow
		disc[year] = d
	}
	sc.Discounted = disc
}

// buildSummary computes stage 5, the one-row metrics output.
func (sc *Scenario) buildSummary() {
	in := sc.Inputs
	years := in.StudyPeriod.Value
	totalInvestment := (in.CapEx.Value + in.DevEx.Value) * in.PVCapacity.Value

	s := Summary{PVCapacityKWp: in.PVCapacity.Value}

	var opexSum float64
	for _, r := range sc.Cashflow[1:] {
		s.LoadMWh += r.LoadMWh
		s.PVTotalMWh += r.PVTotalMWh
		s.PVSelfConsMWh += r.PVSelfConsMWh
		s.GridImportMWh += r.GridImportMWh
		s.GridExportMWh += r.GridExportMWh
		opexSum += r.OpEx
	}
	s.SelfConsPct = s.PVSelfConsMWh / s.LoadMWh * 100
	s.UtilisationPct = s.PVSelfConsMWh / s.PVTotalMWh * 100
	s.CapEx = in.CapEx.Value * in.PVCapacity.Value
	s.MeanOpEx = opexSum / float64(years)

	// Discounted lifecycle totals for LCOE/BLCOE.
	equity := totalInvestment * (1 - in.LoanFraction.Value)
	var loanSum, discOpexSum, importSum, exportSum, selfConsKWh, loadKWh float64
	for _, d := range sc.Discounted[1:] {
		loanSum += d.LoanPayment
		discOpexSum += d.OpEx
		importSum += d.ImportCost
		exportSum += d.ExportRevenue
		selfConsKWh += d.PVSelfConsMWh * 1000
		loadKWh += d.LoadMWh * 1000
	}
	// Reported as currency/MWh.
	s.LCOE = (equity + loanSum + discOpexSum - exportSum) / selfConsKWh * 1000
	s.BLCOE = (equity + loanSum + discOpexSum - exportSum + importSum) / loadKWh * 1000

	for _, d := range sc.Discounted {
		s.NPV += d.Cashflow
	}

	cashflows := make([]float64, years+1)
	balances := make([]float64, years+1)
	for y, r := range sc.Cashflow {
		cashflows[y] = r.Cashflow
		balances[y] = r.CashBalance
	}
	if irr, err := IRR(cashflows); err != nil {
		s.IRR = math.NaN()
	} else {
		s.IRR = irr * 100
		s.IRRConverged = true
	}

	s.PaybackYears = paybackPeriod(balances, years)
	sc.Summary = s
}
