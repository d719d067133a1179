package cache

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-feasibility/internal/model"
	"pv-feasibility/internal/scenario"
)

func cacheSpec(t *testing.T) *model.InputSpec {
	t.Helper()
	in, err := model.NewInputSpec(model.FlatSeries(1_000_000), model.FlatSeries(15_000_000), model.DefaultParams())
	require.NoError(t, err)
	return in
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := cacheSpec(t)
	b := cacheSpec(t)

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t, Fingerprint(a), Fingerprint(a.Clone()))
	assert.Len(t, Fingerprint(a), 64)
}

func TestFingerprint_SensitiveToChanges(t *testing.T) {
	base := cacheSpec(t)
	key := Fingerprint(base)

	capChanged := base.WithCapacity(1001)
	assert.NotEqual(t, key, Fingerprint(capChanged))

	tariffChanged, err := base.With(model.VarImportTariff, 0.11)
	require.NoError(t, err)
	assert.NotEqual(t, key, Fingerprint(tariffChanged))

	seriesChanged := base.Clone()
	seriesChanged.Load.Value[4000] += 1
	assert.NotEqual(t, key, Fingerprint(seriesChanged))
}

func TestFingerprint_NegativeZero(t *testing.T) {
	a := cacheSpec(t)
	b := a.Clone()
	b.DevEx.Value = math.Copysign(0, -1)

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestStore_PutGet(t *testing.T) {
	s := New(4)
	in := cacheSpec(t)
	sc, err := scenario.Build(in, scenario.WithoutHourlyDetail())
	require.NoError(t, err)

	key := Fingerprint(in)
	_, ok := s.Get(key)
	assert.False(t, ok)

	s.Put(key, sc)
	got, ok := s.Get(key)
	require.True(t, ok)
	assert.Same(t, sc, got)
	assert.Equal(t, 1, s.Len())

	// Overwrite does not grow the store.
	s.Put(key, sc)
	assert.Equal(t, 1, s.Len())
}

func TestStore_EvictsOldest(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s.Put(fmt.Sprintf("key-%d", i), &scenario.Scenario{})
	}

	assert.Equal(t, 3, s.Len())
	_, ok := s.Get("key-0")
	assert.False(t, ok)
	_, ok = s.Get("key-1")
	assert.False(t, ok)
	_, ok = s.Get("key-4")
	assert.True(t, ok)
}
