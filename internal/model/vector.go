package model

// Vector is a sparse feature row. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Dot returns the inner product of v with a dense row of the same dimension.
func (v Vector) Dot(row []float64) float64 {
	var sum float64
	for i, idx := range v.Indices {
		if idx < len(row) {
			sum += v.Values[i] * row[idx]
		}
	}
	return sum
}

// Dense expands v into a slice of length Dim.
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for i, idx := range v.Indices {
		out[idx] = v.Values[i]
	}
	return out
}

// NNZ reports the number of stored entries.
func (v Vector) NNZ() int {
	return len(v.Indices)
}
