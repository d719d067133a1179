package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pv-feasibility/internal/model"
)

// Config is the on-disk scenario configuration shape (YAML).
//
// %-quantities are written on the human 0-100 scale (discount_rate_pct:
// 4 means 4%) and converted to decimals when building model.Params.
type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	Profiles ProfilesConfig `yaml:"profiles"`
}

type ScenarioConfig struct {
	RefCapacityKWp  float64 `yaml:"ref_capacity_kwp"`
	PostprocLossPct float64 `yaml:"postproc_loss_pct"`

	StudyPeriodYears int     `yaml:"study_period_years"`
	DiscountRatePct  float64 `yaml:"discount_rate_pct"`

	PVCapacityKWp    float64 `yaml:"pv_capacity_kwp"`
	PVDegradationPct float64 `yaml:"pv_degradation_pct"`

	Currency string  `yaml:"currency"`
	DevEx    float64 `yaml:"devex_per_kwp"`
	CapEx    float64 `yaml:"capex_per_kwp"`
	OpEx     float64 `yaml:"opex_per_kwp"`

	OpExEscalationPct float64 `yaml:"opex_escalation_pct"`

	LoanPct         float64 `yaml:"loan_pct"`
	LoanPeriodYears int     `yaml:"loan_period_years"`
	LoanRatePct     float64 `yaml:"loan_rate_pct"`

	ImportTariff        float64 `yaml:"import_tariff_per_kwh"`
	ExportTariff        float64 `yaml:"export_tariff_per_kwh"`
	ImportEscalationPct float64 `yaml:"import_escalation_pct"`
	ExportEscalationPct float64 `yaml:"export_escalation_pct"`
}

// ProfilesConfig defines where the two hourly series come from: JSON
// files (one array of 8760 values each), or synthetic flat profiles
// built from annual totals when no files are given.
type ProfilesConfig struct {
	LoadFile     string `yaml:"load_file"`
	RefYieldFile string `yaml:"ref_yield_file"`

	FlatLoadKWhYr     float64 `yaml:"flat_load_kwh_yr"`
	FlatYieldKWhKWpYr float64 `yaml:"flat_yield_kwh_kwp_yr"`
}

// Load reads, defaults and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	// Series paths are relative to the config file.
	dir := filepath.Dir(path)
	if c.Profiles.LoadFile != "" && !filepath.IsAbs(c.Profiles.LoadFile) {
		c.Profiles.LoadFile = filepath.Join(dir, c.Profiles.LoadFile)
	}
	if c.Profiles.RefYieldFile != "" && !filepath.IsAbs(c.Profiles.RefYieldFile) {
		c.Profiles.RefYieldFile = filepath.Join(dir, c.Profiles.RefYieldFile)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	def := model.DefaultParams()
	if c.Scenario.RefCapacityKWp == 0 {
		c.Scenario.RefCapacityKWp = def.RefCapacityKWp
	}
	if c.Scenario.StudyPeriodYears == 0 {
		c.Scenario.StudyPeriodYears = def.StudyPeriodYears
	}
	if c.Scenario.PVCapacityKWp == 0 {
		c.Scenario.PVCapacityKWp = def.PVCapacityKWp
	}
	if c.Scenario.Currency == "" {
		c.Scenario.Currency = string(def.Currency)
	}
	if c.Scenario.CapEx == 0 {
		c.Scenario.CapEx = def.CapEx
	}
}

func (c *Config) Validate() error {
	if c.Scenario.StudyPeriodYears < 1 {
		return fmt.Errorf("%w: study_period_years must be >= 1", model.ErrInvalidArgument)
	}
	if c.Scenario.RefCapacityKWp <= 0 {
		return fmt.Errorf("%w: ref_capacity_kwp must be > 0", model.ErrInvalidArgument)
	}
	hasFiles := c.Profiles.LoadFile != "" && c.Profiles.RefYieldFile != ""
	hasFlat := c.Profiles.FlatLoadKWhYr > 0 && c.Profiles.FlatYieldKWhKWpYr > 0
	if !hasFiles && !hasFlat {
		return fmt.Errorf("%w: profiles need either load_file+ref_yield_file or flat annual totals", model.ErrInvalidArgument)
	}
	return nil
}

// Params converts the config to engine parameters, moving %-fields onto
// the internal 0-1 scale.
func (c *Config) Params() model.Params {
	s := c.Scenario
	return model.Params{
		RefCapacityKWp:   s.RefCapacityKWp,
		PostprocLoss:     s.PostprocLossPct / 100,
		StudyPeriodYears: s.StudyPeriodYears,
		DiscountRate:     s.DiscountRatePct / 100,
		PVCapacityKWp:    s.PVCapacityKWp,
		PVDegradation:    s.PVDegradationPct / 100,
		Currency:         model.Currency(s.Currency),
		DevEx:            s.DevEx,
		CapEx:            s.CapEx,
		OpEx:             s.OpEx,
		OpExEscalation:   s.OpExEscalationPct / 100,
		LoanFraction:     s.LoanPct / 100,
		LoanPeriodYears:  s.LoanPeriodYears,
		LoanRate:         s.LoanRatePct / 100,
		ImportTariff:     s.ImportTariff,
		ExportTariff:     s.ExportTariff,
		ImportEscalation: s.ImportEscalationPct / 100,
		ExportEscalation: s.ExportEscalationPct / 100,
	}
}

// Series loads (or synthesises) the load and reference-yield profiles.
// The synthetic reference yield is scaled to the reference capacity so
// the derived specific yield matches flat_yield_kwh_kwp_yr.
func (c *Config) Series() (load, refYield model.HourlySeries, err error) {
	if c.Profiles.LoadFile != "" {
		load, err = LoadSeriesJSON(c.Profiles.LoadFile)
		if err != nil {
			return nil, nil, err
		}
	} else {
		load = model.FlatSeries(c.Profiles.FlatLoadKWhYr)
	}
	if c.Profiles.RefYieldFile != "" {
		refYield, err = LoadSeriesJSON(c.Profiles.RefYieldFile)
		if err != nil {
			return nil, nil, err
		}
	} else {
		loss := 1 - c.Scenario.PostprocLossPct/100
		refYield = model.FlatSeries(c.Profiles.FlatYieldKWhKWpYr * c.Scenario.RefCapacityKWp / loss)
	}
	return load, refYield, nil
}

// InputSpec builds the full input specification from the config.
func (c *Config) InputSpec() (*model.InputSpec, error) {
	load, refYield, err := c.Series()
	if err != nil {
		return nil, err
	}
	return model.NewInputSpec(load, refYield, c.Params())
}
