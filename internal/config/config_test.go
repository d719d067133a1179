package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-feasibility/internal/model"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FlatProfiles(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
scenario:
  ref_capacity_kwp: 10000
  postproc_loss_pct: 3
  study_period_years: 20
  discount_rate_pct: 4
  pv_capacity_kwp: 1500
  pv_degradation_pct: 0.5
  currency: EUR
  capex_per_kwp: 650
  opex_per_kwp: 12
  loan_pct: 50
  loan_period_years: 10
  loan_rate_pct: 5
  import_tariff_per_kwh: 0.12
  export_tariff_per_kwh: 0.04
  import_escalation_pct: 2
profiles:
  flat_load_kwh_yr: 2000000
  flat_yield_kwh_kwp_yr: 1450
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	p := cfg.Params()
	assert.Equal(t, 20, p.StudyPeriodYears)
	assert.InDelta(t, 0.03, p.PostprocLoss, 1e-12)
	assert.InDelta(t, 0.04, p.DiscountRate, 1e-12)
	assert.InDelta(t, 0.005, p.PVDegradation, 1e-12)
	assert.Equal(t, model.CurrencyEUR, p.Currency)
	assert.InDelta(t, 0.5, p.LoanFraction, 1e-12)
	assert.InDelta(t, 0.05, p.LoanRate, 1e-12)
	assert.InDelta(t, 0.02, p.ImportEscalation, 1e-12)
	assert.Equal(t, 0.12, p.ImportTariff)

	in, err := cfg.InputSpec()
	require.NoError(t, err)
	assert.InDelta(t, 2_000_000, in.Load.Value.Sum(), 1e-3)
	// Synthetic yield is pre-scaled so normalization lands on the
	// configured specific yield.
	assert.InDelta(t, 1450, in.SpecificYield.Value.Sum(), 1e-6)
	assert.Equal(t, "EUR/kWp", in.CapEx.Unit)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
scenario:
  import_tariff_per_kwh: 0.10
profiles:
  flat_load_kwh_yr: 1000000
  flat_yield_kwh_kwp_yr: 1500
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	def := model.DefaultParams()
	p := cfg.Params()
	assert.Equal(t, def.StudyPeriodYears, p.StudyPeriodYears)
	assert.Equal(t, def.RefCapacityKWp, p.RefCapacityKWp)
	assert.Equal(t, def.PVCapacityKWp, p.PVCapacityKWp)
	assert.Equal(t, def.CapEx, p.CapEx)
	assert.Equal(t, def.Currency, p.Currency)
}

func TestLoad_SeriesFiles(t *testing.T) {
	dir := t.TempDir()

	series := make([]float64, model.HoursPerYear)
	for i := range series {
		series[i] = 100
	}
	raw, err := json.Marshal(series)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "load.json"), raw, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yield.json"), raw, 0o644))

	// Relative paths resolve against the config file's directory.
	path := writeConfig(t, dir, `
scenario:
  ref_capacity_kwp: 100
profiles:
  load_file: load.json
  ref_yield_file: yield.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	load, refYield, err := cfg.Series()
	require.NoError(t, err)
	assert.InDelta(t, 876_000, load.Sum(), 1e-6)
	assert.InDelta(t, 876_000, refYield.Sum(), 1e-6)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(writeConfig(t, dir, `
scenario:
  study_period_years: -1
profiles:
  flat_load_kwh_yr: 1000000
  flat_yield_kwh_kwp_yr: 1500
`))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	// No profiles at all.
	_, err = Load(writeConfig(t, dir, `
scenario:
  import_tariff_per_kwh: 0.10
`))
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = Load(filepath.Join(dir, "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadSeriesJSON_ShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.json")
	require.NoError(t, os.WriteFile(path, []byte("[1, 2, 3]"), 0o644))

	_, err := LoadSeriesJSON(path)
	assert.ErrorIs(t, err, model.ErrShapeMismatch)
}
