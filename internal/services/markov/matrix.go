package markov

// Matrix3 is a fixed-size 3x3 concentration or transition matrix with value
// semantics; plain assignment copies it, so prior/posterior snapshots never
// share storage.
type Matrix3 [3][3]float64

// Distribution is a belief vector over {crash, normal, pump}.
type Distribution [3]float64

// NewSymmetric returns a matrix with every entry set to v.
func NewSymmetric(v float64) Matrix3 {
	var m Matrix3
	for i := range m {
		for j := range m[i] {
			m[i][j] = v
		}
	}
	return m
}

// Add returns the entrywise sum m + o.
func (m Matrix3) Add(o Matrix3) Matrix3 {
	for i := range m {
		for j := range m[i] {
			m[i][j] += o[i][j]
		}
	}
	return m
}

// RowNormalize derives a row-stochastic transition matrix from a
// concentration matrix. A degenerate all-zero row becomes uniform.
func (m Matrix3) RowNormalize() Matrix3 {
	for i := range m {
		sum := m[i][0] + m[i][1] + m[i][2]
		if sum <= 0 {
			m[i] = [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}
			continue
		}
		for j := range m[i] {
			m[i][j] /= sum
		}
	}
	return m
}

// Mul returns the matrix product m*o.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var out Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s := 0.0
			for k := 0; k < 3; k++ {
				s += m[i][k] * o[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

// Pow returns m^n by square-and-multiply. n == 0 yields the identity.
func (m Matrix3) Pow(n int) Matrix3 {
	out := Identity()
	base := m
	for n > 0 {
		if n&1 == 1 {
			out = out.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return out
}

// Identity returns the 3x3 identity matrix.
func Identity() Matrix3 {
	var m Matrix3
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// Step advances a distribution one transition: d' = d * m.
func (d Distribution) Step(m Matrix3) Distribution {
	var out Distribution
	for j := 0; j < 3; j++ {
		s := 0.0
		for i := 0; i < 3; i++ {
			s += d[i] * m[i][j]
		}
		out[j] = s
	}
	return out
}

// Propagate returns the full sequence of distributions from d through steps
// applications of m; index 0 is d itself.
func (d Distribution) Propagate(m Matrix3, steps int) []Distribution {
	out := make([]Distribution, 0, steps+1)
	out = append(out, d)
	cur := d
	for s := 0; s < steps; s++ {
		cur = cur.Step(m)
		out = append(out, cur)
	}
	return out
}

// PropagateN jumps a distribution forward n steps via matrix exponentiation.
// Must agree with iterating Step n times; the power form is only an
// optimization for large n.
func (d Distribution) PropagateN(m Matrix3, n int) Distribution {
	return d.Step(m.Pow(n))
}

// Sum returns the total probability mass (1 for a proper distribution).
func (d Distribution) Sum() float64 {
	return d[0] + d[1] + d[2]
}
