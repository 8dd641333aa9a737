package detector

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArray(t *testing.T) *Array {
	t.Helper()
	a, err := NewArray(
		Detector{Name: "pmt0", Type: PMT, QE: 0.3, QEBinned: []float64{0.1, 0.25}},
		Detector{Name: "sipm1", Type: SiPM, QE: 0.2},
		Detector{Name: "pmt2", Type: PMT, QE: 0.05, QEBinned: []float64{0.4, 0.1, 0.02}},
	)
	require.NoError(t, err)
	return a
}

func TestArrayMaxQE(t *testing.T) {
	a := testArray(t)

	assert.Equal(t, 0.3, a.MaxQE(-1))
	assert.Equal(t, 0.4, a.MaxQE(0))
	assert.Equal(t, 0.25, a.MaxQE(1))
	assert.Equal(t, 0.3, a.MaxQE(2), "pmt0 has no bin 2 and falls back to its scalar QE")
	assert.Equal(t, 0.3, a.MaxQE(9))
}

func TestArrayLookup(t *testing.T) {
	a := testArray(t)

	assert.Equal(t, 3, a.Len())
	assert.True(t, a.IsSiPM(1))
	assert.False(t, a.IsSiPM(0))
	assert.False(t, a.IsSiPM(12))
	assert.Nil(t, a.Detector(-1))
	assert.Equal(t, 0.25, a.QE(0, 1))
	assert.Equal(t, 0.3, a.QE(0, -1))
	assert.Equal(t, 0.2, a.QE(1, 0))
	assert.Zero(t, a.QE(5, 0))
}

func TestNewArrayRejectsBadQE(t *testing.T) {
	_, err := NewArray(Detector{Name: "x", QE: 1.2})
	assert.True(t, errors.Is(err, ErrInvalidQE))
	_, err = NewArray(Detector{Name: "y", QE: 0.2, QEBinned: []float64{0.1, -0.1}})
	assert.True(t, errors.Is(err, ErrInvalidQE))
}

func TestCollectorSignal(t *testing.T) {
	a := testArray(t)
	c := NewCollector(a)

	c.RecordHit(Hit{Detector: 0, WaveIndex: -1, Random: 0.29}) // below 0.3
	c.RecordHit(Hit{Detector: 0, WaveIndex: 0, Random: 0.29})  // above 0.1
	c.RecordHit(Hit{Detector: 1, WaveIndex: 0, Random: 0.1})
	c.RecordHit(Hit{Detector: 7, Random: 0})

	assert.Len(t, c.Hits, 4)
	if diff := cmp.Diff([]int{1, 1, 0}, c.Signal); diff != "" {
		t.Errorf("signal mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, c.Detected())
}

func TestCollectorMerge(t *testing.T) {
	a := testArray(t)
	first := NewCollector(a)
	second := NewCollector(a)

	first.RecordHit(Hit{Detector: 1, Time: 1, Random: 0})
	second.RecordHit(Hit{Detector: 1, Time: 2, Random: 0})
	second.RecordHit(Hit{Detector: 2, Time: 3, Random: 0})

	first.Merge(second)
	assert.Equal(t, []int{0, 2, 1}, first.Signal)
	want := []Hit{{Detector: 1, Time: 1}, {Detector: 1, Time: 2}, {Detector: 2, Time: 3}}
	if diff := cmp.Diff(want, first.Hits); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}

	first.Reset()
	assert.Empty(t, first.Hits)
	assert.Equal(t, 0, first.Detected())
}
