package markov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowNormalize(t *testing.T) {
	m := Matrix3{{2, 1, 1}, {0, 0, 0}, {1, 1, 8}}.RowNormalize()
	for i := range m {
		assert.InDelta(t, 1.0, m[i][0]+m[i][1]+m[i][2], 1e-9, "row %d", i)
	}
	assert.Equal(t, 0.5, m[0][0])
	// degenerate row becomes uniform
	assert.InDelta(t, 1.0/3, m[1][1], 1e-12)
}

func TestAddValueSemantics(t *testing.T) {
	a := NewSymmetric(1)
	b := a.Add(NewSymmetric(2))
	assert.Equal(t, 1.0, a[0][0], "Add must not mutate the receiver")
	assert.Equal(t, 3.0, b[0][0])
}

func TestPowZeroIsIdentity(t *testing.T) {
	m := Matrix3{{0.9, 0.05, 0.05}, {0.1, 0.8, 0.1}, {0.05, 0.05, 0.9}}
	assert.Equal(t, Identity(), m.Pow(0))
}

func TestPropagateMatchesPow(t *testing.T) {
	m := Matrix3{{0.90, 0.07, 0.03}, {0.02, 0.95, 0.03}, {0.10, 0.30, 0.60}}
	d := Distribution{0.2, 0.5, 0.3}

	for _, n := range []int{1, 2, 7, 30, 64, 100} {
		seq := d.Propagate(m, n)
		require.Len(t, seq, n+1)
		fast := d.PropagateN(m, n)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, seq[n][i], fast[i], 1e-9, "n=%d state=%d", n, i)
		}
	}
}

func TestPropagateZeroSteps(t *testing.T) {
	m := Identity()
	d := Distribution{0.1, 0.6, 0.3}
	seq := d.Propagate(m, 0)
	require.Len(t, seq, 1)
	assert.Equal(t, d, seq[0])
}

func TestStepConservesMass(t *testing.T) {
	m := Matrix3{{0.5, 0.3, 0.2}, {0.1, 0.8, 0.1}, {0.25, 0.25, 0.5}}
	d := Distribution{0.3, 0.3, 0.4}
	for i := 0; i < 50; i++ {
		d = d.Step(m)
		assert.InDelta(t, 1.0, d.Sum(), 1e-9)
	}
}
