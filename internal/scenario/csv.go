package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table is a read-only tabular view of one scenario artifact, ready to
// render into a CSV file or spreadsheet sheet.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Tables returns the export surface in its fixed order: Input Summary,
// Output Summary, Energy Balance, Cashflow, Discounted Cashflow.
func (sc *Scenario) Tables() []Table {
	return []Table{
		sc.inputSummaryTable(),
		sc.outputSummaryTable(),
		sc.energyBalanceTable(),
		cashflowTable("Cashflow", sc.Cashflow),
		cashflowTable("Discounted Cashflow", sc.Discounted),
	}
}

// inputSummaryTable lists the scalar parameters under their unit-tagged
// titles. %-unit fields render as 0-100 for readability.
func (sc *Scenario) inputSummaryTable() Table {
	in := sc.Inputs
	rows := [][]string{
		{in.StudyPeriod.Title(), strconv.Itoa(in.StudyPeriod.Value)},
		{in.DiscountRate.Title(), fmtFloat(in.DiscountRate.Value * 100)},
		{in.PVCapacity.Title(), fmtFloat(in.PVCapacity.Value)},
		{in.PVDegradation.Title(), fmtFloat(in.PVDegradation.Value * 100)},
		{in.Currency.Name, string(in.Currency.Value)},
		{in.DevEx.Title(), fmtFloat(in.DevEx.Value)},
		{in.CapEx.Title(), fmtFloat(in.CapEx.Value)},
		{in.OpEx.Title(), fmtFloat(in.OpEx.Value)},
		{in.OpExEscalation.Title(), fmtFloat(in.OpExEscalation.Value * 100)},
		{in.LoanFraction.Title(), fmtFloat(in.LoanFraction.Value * 100)},
		{in.LoanPeriod.Title(), strconv.Itoa(in.LoanPeriod.Value)},
		{in.LoanRate.Title(), fmtFloat(in.LoanRate.Value * 100)},
		{in.ImportTariff.Title(), fmtFloat(in.ImportTariff.Value)},
		{in.ExportTariff.Title(), fmtFloat(in.ExportTariff.Value)},
		{in.ImportEscalation.Title(), fmtFloat(in.ImportEscalation.Value * 100)},
		{in.ExportEscalation.Title(), fmtFloat(in.ExportEscalation.Value * 100)},
	}
	return Table{
		Name:   "Input Summary",
		Header: []string{"parameter", "value"},
		Rows:   rows,
	}
}

func (sc *Scenario) outputSummaryTable() Table {
	cur := sc.Inputs.Currency.Value
	s := sc.Summary
	rows := [][]string{
		{"Total Load (MWh)", fmtFloat(s.LoadMWh)},
		{"Total PV Yield (MWh)", fmtFloat(s.PVTotalMWh)},
		{"Total PV Self-consumption (MWh)", fmtFloat(s.PVSelfConsMWh)},
		{"Total Energy Grid Import (MWh)", fmtFloat(s.GridImportMWh)},
		{"Total Energy Grid Export (MWh)", fmtFloat(s.GridExportMWh)},
		{"Overall PV Self-consumption (%)", fmtFloat(s.SelfConsPct)},
		{"Overall PV Utilisation (%)", fmtFloat(s.UtilisationPct)},
		{fmt.Sprintf("Total CapEx (%s)", cur), fmtFloat(s.CapEx)},
		{fmt.Sprintf("Average Annual OpEx (%s p.a.)", cur), fmtFloat(s.MeanOpEx)},
		{fmt.Sprintf("Levelised Cost of Electricity (%s/MWh)", cur), fmtFloat(s.LCOE)},
		{fmt.Sprintf("Blended Levelised Cost of Electricity (%s/MWh)", cur), fmtFloat(s.BLCOE)},
		{fmt.Sprintf("Net Present Value (NPV) (%s)", cur), fmtFloat(s.NPV)},
		{"Internal Rate of Return (IRR) (%)", fmtFloat(s.IRR)},
		{"Pay-Back Period (yrs)", fmtFloat(s.PaybackYears)},
	}
	return Table{
		Name:   "Output Summary",
		Header: []string{"metric", "value"},
		Rows:   rows,
	}
}

func (sc *Scenario) energyBalanceTable() Table {
	rows := make([][]string, 0, len(sc.EnergySummary))
	for _, es := range sc.EnergySummary {
		rows = append(rows, []string{
			strconv.Itoa(es.Year),
			fmtFloat(es.LoadMWh),
			fmtFloat(es.PVTotalMWh),
			fmtFloat(es.PVSelfConsMWh),
			fmtFloat(es.GridImportMWh),
			fmtFloat(es.GridExportMWh),
			fmtFloat(es.SelfConsFraction),
			fmtFloat(es.UtilisationFraction),
		})
	}
	return Table{
		Name: "Energy Balance",
		Header: []string{
			"year",
			"load_mwh",
			"pv_total_mwh",
			"pv_self_cons_mwh",
			"grid_import_mwh",
			"grid_export_mwh",
			"self_cons_fraction",
			"utilisation_fraction",
		},
		Rows: rows,
	}
}

func cashflowTable(name string, rows []CashflowRow) Table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.LoadMWh),
			fmtFloat(r.PVTotalMWh),
			fmtFloat(r.PVSelfConsMWh),
			fmtFloat(r.GridImportMWh),
			fmtFloat(r.GridExportMWh),
			fmtFloat(r.ImportTariff),
			fmtFloat(r.ExportTariff),
			fmtFloat(r.CombinedTariff),
			fmtFloat(r.ImportCost),
			fmtFloat(r.ExportRevenue),
			fmtFloat(r.PVRevenue),
			fmtFloat(r.OpEx),
			fmtFloat(r.LoanPayment),
			fmtFloat(r.Cashflow),
			fmtFloat(r.CashBalance),
		})
	}
	return Table{
		Name: name,
		Header: []string{
			"year",
			"load_mwh",
			"pv_total_mwh",
			"pv_self_cons_mwh",
			"grid_import_mwh",
			"grid_export_mwh",
			"import_tariff",
			"export_tariff",
			"combined_tariff",
			"import_cost",
			"export_revenue",
			"pv_revenue",
			"opex",
			"loan_payment",
			"cashflow",
			"cash_balance",
		},
		Rows: out,
	}
}

// WriteTableCSV writes one table to a CSV file.
func WriteTableCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
