package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeYield_Formula(t *testing.T) {
	load := FlatSeries(1_000_000)
	refYield := FlatSeries(15_000_000)

	sy, err := NormalizeYield(refYield, load, 10000, 0.03)
	require.NoError(t, err)
	require.Len(t, sy, HoursPerYear)

	// sy[h] = refYield[h] * 0.97 / 10000
	want := refYield[0] * 0.97 / 10000
	assert.InDelta(t, want, sy[0], 1e-12)
	assert.InDelta(t, 15_000_000*0.97/10000, sy.Sum(), 1e-6)
}

func TestNormalizeYield_ClipsNegatives(t *testing.T) {
	load := FlatSeries(1_000_000)
	refYield := FlatSeries(0)
	refYield[0] = -50 // PVsyst night-time artifacts
	refYield[1] = 100

	sy, err := NormalizeYield(refYield, load, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sy[0])
	assert.InDelta(t, 1.0, sy[1], 1e-12)
}

func TestNormalizeYield_ShapeMismatch(t *testing.T) {
	load := FlatSeries(1_000_000)
	short := make(HourlySeries, 8759)

	_, err := NormalizeYield(short, load, 100, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NormalizeYield(make(HourlySeries, 100), make(HourlySeries, 100), 100, 0)
	assert.ErrorIs(t, err, ErrShapeMismatch, "non-annual series must be rejected")
}

func TestNormalizeYield_InvalidArgs(t *testing.T) {
	load := FlatSeries(1)
	refYield := FlatSeries(1)

	_, err := NormalizeYield(refYield, load, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NormalizeYield(refYield, load, 100, 1.0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFlatSeries_Total(t *testing.T) {
	s := FlatSeries(8760)
	require.Len(t, s, HoursPerYear)
	assert.InDelta(t, 1.0, s[0], 1e-12)
	assert.InDelta(t, 8760.0, s.Sum(), 1e-6)
}
