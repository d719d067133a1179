package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-feasibility/internal/model"
)

func TestSensitivity_TariffGrid(t *testing.T) {
	in := sweepSpec(t)

	res, err := Sensitivity(context.Background(), in, SensitivitySpec{
		Variable: model.VarImportTariff,
		SecMin:   0.05,
		SecMax:   0.15,
		SecSteps: 3,
		CapMin:   500,
		CapMax:   2000,
		CapSteps: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.05, 0.1, 0.15}, res.Grid)
	for _, v := range res.Grid {
		sw := res.Sweeps[v]
		require.NotNil(t, sw, "value %g", v)
		require.NotNil(t, sw.Best)
		assert.Equal(t, []int{500, 1000, 1500, 2000}, sw.Capacities)
	}

	// A richer import tariff can only improve the best NPV.
	assert.LessOrEqual(t, res.Sweeps[0.05].Best.Summary.NPV, res.Sweeps[0.15].Best.Summary.NPV)

	assert.Equal(t, 0.1, in.ImportTariff.Value, "base spec stays unmodified")
}

func TestSensitivity_PercentVariablesScaleDown(t *testing.T) {
	// Discount rate carries a % unit: values arrive on the 0-100 scale.
	res, err := Sensitivity(context.Background(), sweepSpec(t), SensitivitySpec{
		Variable: model.VarDiscountRate,
		SecMin:   2,
		SecMax:   6,
		SecSteps: 3,
		CapMin:   500,
		CapMax:   1500,
		CapSteps: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0.02, 0.04, 0.06}, res.Grid)
}

func TestSensitivity_RoundsAndDedups(t *testing.T) {
	// 0 to 1e-5 in 3 steps rounds to {0, 0, 0} at four decimals; the
	// duplicates collapse to a single sweep.
	res, err := Sensitivity(context.Background(), sweepSpec(t), SensitivitySpec{
		Variable: model.VarExportTariff,
		SecMin:   0,
		SecMax:   1e-5,
		SecSteps: 3,
		CapMin:   500,
		CapMax:   1500,
		CapSteps: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{0}, res.Grid)
	assert.Len(t, res.Sweeps, 1)
}

func TestSensitivity_InvalidInput(t *testing.T) {
	in := sweepSpec(t)

	_, err := Sensitivity(context.Background(), in, SensitivitySpec{
		Variable: model.Variable("frobnication"),
		SecSteps: 3,
		CapMin:   500, CapMax: 1500, CapSteps: 2,
	})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = Sensitivity(context.Background(), in, SensitivitySpec{
		Variable: model.VarImportTariff,
		SecSteps: 0,
		CapMin:   500, CapMax: 1500, CapSteps: 2,
	})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestSensitivity_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sensitivity(ctx, sweepSpec(t), SensitivitySpec{
		Variable: model.VarImportTariff,
		SecMin:   0.05, SecMax: 0.15, SecSteps: 3,
		CapMin: 500, CapMax: 1500, CapSteps: 2,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
