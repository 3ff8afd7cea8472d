package tda8425

// BiquadModel holds normalized second-order IIR coefficients (a0 = 1).
// A1 and A2 are stored negated, so the recurrence adds the feedback terms:
//
//	y0 = b0*x0 + b1*x1 + b2*x2 + a1*y1 + a2*y2
type BiquadModel struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Unity is the pass-through model.
var Unity = BiquadModel{B0: 1}

// BiquadState is the direct form I history of one filter instance.
type BiquadState struct {
	X0, X1, X2 float64
	Y0, Y1, Y2 float64
}

// Clear zeroes the input history and sets the output history to output,
// so a filter restarted at a known DC level has no startup transient.
func (s *BiquadState) Clear(output float64) {
	s.X0, s.X1, s.X2 = 0, 0, 0
	s.Y0, s.Y1, s.Y2 = output, output, output
}

// ProcessVector filters len(in) samples into out. in and out may be the
// same slice. out must be at least as long as in.
func (s *BiquadState) ProcessVector(m *BiquadModel, in, out []float64) {
	x0, x1, x2 := s.X0, s.X1, s.X2
	y0, y1, y2 := s.Y0, s.Y1, s.Y2
	b0, b1, b2 := m.B0, m.B1, m.B2
	a1, a2 := m.A1, m.A2

	out = out[:len(in)]
	for i, x := range in {
		x2 = x1
		x1 = x0
		x0 = x

		y2 = y1
		y1 = y0
		y0 = x0*b0 + x1*b1 + x2*b2 + y1*a1 + y2*a2

		out[i] = y0
	}

	s.X0, s.X1, s.X2 = x0, x1, x2
	s.Y0, s.Y1, s.Y2 = y0, y1, y2
}

// ProcessSample filters a single sample.
func (s *BiquadState) ProcessSample(m *BiquadModel, x float64) float64 {
	buf := [1]float64{x}
	s.ProcessVector(m, buf[:], buf[:])
	return buf[0]
}
