package scenario

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnuityPayment(t *testing.T) {
	// 1000 over 10 periods at 5%: standard amortisation table value.
	got := AnnuityPayment(0.05, 10, 1000)
	assert.InDelta(t, 129.5046, got, 1e-4)

	// Zero rate degenerates to straight-line repayment.
	assert.InDelta(t, 100.0, AnnuityPayment(0, 10, 1000), 1e-12)

	assert.Equal(t, 0.0, AnnuityPayment(0.05, 0, 1000))
	assert.Equal(t, 0.0, AnnuityPayment(0.05, 10, 0))
}

func TestIRR_ZeroesNPV(t *testing.T) {
	cashflows := []float64{-1000, 300, 300, 300, 300, 300}

	irr, err := IRR(cashflows)
	require.NoError(t, err)

	npv, _ := npvAt(cashflows, irr)
	assert.InDelta(t, 0.0, npv, 1e-6)
	assert.Greater(t, irr, 0.0)
	assert.Less(t, irr, 0.2)
}

func TestIRR_KnownValue(t *testing.T) {
	// -100 now, 110 in one year: IRR is exactly 10%.
	irr, err := IRR([]float64{-100, 110})
	require.NoError(t, err)
	assert.InDelta(t, 0.10, irr, 1e-6)
}

func TestIRR_NoSignChange(t *testing.T) {
	_, err := IRR([]float64{-100, -50, -25})
	assert.ErrorIs(t, err, ErrIRRNoSignChange)

	_, err = IRR([]float64{100, 50, 25})
	assert.ErrorIs(t, err, ErrIRRNoSignChange)
}

func TestPaybackPeriod_LinearRecovery(t *testing.T) {
	// -1000 at year 0 recovering 100/yr: crosses zero at year 10.
	balances := make([]float64, 26)
	balances[0] = -1000
	for y := 1; y <= 25; y++ {
		balances[y] = balances[y-1] + 100
	}

	got := paybackPeriod(balances, 25)
	assert.InDelta(t, 10.0, got, 0.05)
}

func TestPaybackPeriod_FractionalCrossing(t *testing.T) {
	// -700 at year 0 recovering 110/yr: zero at 700/110 = 6.3636.
	balances := make([]float64, 26)
	balances[0] = -700
	for y := 1; y <= 25; y++ {
		balances[y] = balances[y-1] + 110
	}

	got := paybackPeriod(balances, 25)
	assert.InDelta(t, 700.0/110.0, got, 0.05)
}

func TestPaybackPeriod_NeverRecovers(t *testing.T) {
	// Strictly declining balance: the closest-to-zero point is year 1.
	balances := []float64{-100, -200, -300, -400}
	got := paybackPeriod(balances, 3)
	assert.InDelta(t, 1.0, got, 0.05)
}

func TestPaybackPeriod_Degenerate(t *testing.T) {
	assert.True(t, math.IsNaN(paybackPeriod([]float64{-1}, 0)))
	assert.True(t, math.IsNaN(paybackPeriod([]float64{-1}, 5)))
}

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 524.14, roundCents(524.1449), 1e-12)
	assert.InDelta(t, 524.15, roundCents(524.1462), 1e-12)
}
