package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSpec(t *testing.T) *InputSpec {
	t.Helper()
	in, err := NewInputSpec(FlatSeries(1_000_000), FlatSeries(15_000_000), DefaultParams())
	require.NoError(t, err)
	return in
}

func TestNewInputSpec_Defaults(t *testing.T) {
	in := testSpec(t)

	assert.Equal(t, 25, in.StudyPeriod.Value)
	assert.Equal(t, "Study period (yrs)", in.StudyPeriod.Title())
	assert.Equal(t, "USD/kWp", in.CapEx.Unit)
	assert.Equal(t, "%", in.DiscountRate.Unit)
	assert.Len(t, in.SpecificYield.Value, HoursPerYear)
}

func TestNewInputSpec_RejectsInvalidPeriod(t *testing.T) {
	p := DefaultParams()
	p.StudyPeriodYears = 0
	_, err := NewInputSpec(FlatSeries(1), FlatSeries(1), p)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewInputSpec_LoanRequiresPeriod(t *testing.T) {
	p := DefaultParams()
	p.LoanFraction = 0.5
	p.LoanPeriodYears = 0
	_, err := NewInputSpec(FlatSeries(1), FlatSeries(1), p)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClone_Independent(t *testing.T) {
	in := testSpec(t)
	clone := in.Clone()

	clone.PVCapacity.Value = 5000
	clone.Load.Value[0] = 999

	assert.Equal(t, 1000.0, in.PVCapacity.Value)
	assert.NotEqual(t, 999.0, in.Load.Value[0])
}

func TestWithCapacity(t *testing.T) {
	in := testSpec(t)
	out := in.WithCapacity(2500)
	assert.Equal(t, 2500.0, out.PVCapacity.Value)
	assert.Equal(t, 1000.0, in.PVCapacity.Value)
}

func TestWith_SetterTable(t *testing.T) {
	in := testSpec(t)

	out, err := in.With(VarImportTariff, 0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.2, out.ImportTariff.Value)
	assert.Equal(t, 0.1, in.ImportTariff.Value)

	out, err = in.With(VarStudyPeriod, 9.6)
	require.NoError(t, err)
	assert.Equal(t, 10, out.StudyPeriod.Value, "integer fields round")

	_, err = in.With(Variable("not_a_field"), 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWith_ValidatesResult(t *testing.T) {
	in := testSpec(t)
	_, err := in.With(VarStudyPeriod, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseVariable(t *testing.T) {
	v, err := ParseVariable("discount_rate")
	require.NoError(t, err)
	assert.Equal(t, VarDiscountRate, v)

	_, err = ParseVariable("Discount Rate")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVariable_IsPercent(t *testing.T) {
	in := testSpec(t)
	assert.True(t, VarDiscountRate.IsPercent(in))
	assert.True(t, VarLoanFraction.IsPercent(in))
	assert.False(t, VarPVCapacity.IsPercent(in))
	assert.False(t, VarImportTariff.IsPercent(in))
}
