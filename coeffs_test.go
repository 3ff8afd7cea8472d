package tda8425

import (
	"math"
	"math/cmplx"
	"testing"
)

// response evaluates the model's frequency response at f Hz.
func response(m BiquadModel, sampleRate, f float64) complex128 {
	zi := cmplx.Exp(complex(0, -2*math.Pi*f/sampleRate)) // z^-1
	num := complex(m.B0, 0) + complex(m.B1, 0)*zi + complex(m.B2, 0)*zi*zi
	den := 1 - complex(m.A1, 0)*zi - complex(m.A2, 0)*zi*zi
	return num / den
}

func magnitude(m BiquadModel, sampleRate, f float64) float64 {
	return cmplx.Abs(response(m, sampleRate, f))
}

// stable checks the poles of z^2 - A1 z - A2 lie inside the unit circle.
func stable(m BiquadModel) bool {
	a1, a2 := -m.A1, -m.A2
	return math.Abs(a2) < 1 && math.Abs(a1) < 1+a2
}

const testRate = 44100.0

// TestCoeffs_CookbookShelfEdges verifies DC and Nyquist gains of the
// cookbook shelves for every tone code
func TestCoeffs_CookbookShelfEdges(t *testing.T) {
	nyquist := testRate / 2

	for code := uint8(0); code < ToneCount; code++ {
		gb := BassGain(code)
		bass := SynthesizeShelvingFilter(testRate, BassFrequency, gb, Bass)
		if got := magnitude(bass, testRate, 0); math.Abs(got-gb) > 1e-9*gb {
			t.Errorf("Bass code %d: DC gain expected %g, got %g", code, gb, got)
		}
		if got := magnitude(bass, testRate, nyquist); math.Abs(got-1) > 1e-9 {
			t.Errorf("Bass code %d: Nyquist gain expected 1, got %g", code, got)
		}
		if !stable(bass) {
			t.Errorf("Bass code %d: unstable model %+v", code, bass)
		}

		gt := TrebleGain(code)
		treble := SynthesizeShelvingFilter(testRate, TrebleFrequency, gt, Treble)
		if got := magnitude(treble, testRate, 0); math.Abs(got-1) > 1e-9 {
			t.Errorf("Treble code %d: DC gain expected 1, got %g", code, got)
		}
		if got := magnitude(treble, testRate, nyquist); math.Abs(got-gt) > 1e-9*gt {
			t.Errorf("Treble code %d: Nyquist gain expected %g, got %g", code, gt, got)
		}
		if !stable(treble) {
			t.Errorf("Treble code %d: unstable model %+v", code, treble)
		}
	}
}

// TestCoeffs_ShelfCutIsNotFlat verifies a cut shelves instead of scaling
func TestCoeffs_ShelfCutIsNotFlat(t *testing.T) {
	m := SynthesizeShelvingFilter(testRate, BassFrequency, LinearGain(-12), Bass)

	low := magnitude(m, testRate, 20)
	high := magnitude(m, testRate, 15000)
	if low > LinearGain(-10) {
		t.Errorf("Bass -12 dB at 20 Hz: expected below -10 dB, got %.2f dB", 20*math.Log10(low))
	}
	if math.Abs(high-1) > 0.01 {
		t.Errorf("Bass -12 dB at 15 kHz: expected about 0 dB, got %.2f dB", 20*math.Log10(high))
	}
}

// TestCoeffs_UnityShelf verifies unity gain shelves are flat
func TestCoeffs_UnityShelf(t *testing.T) {
	for _, design := range []ShelfDesign{ShelfCookbook, ShelfFirstOrder} {
		for _, kind := range []ShelfKind{Bass, Treble} {
			m := SynthesizeShelf(testRate, 1000, 1, kind, design, ShelfSlope)
			for _, f := range []float64{0, 50, 300, 1000, 4500, 12000, 22050} {
				if got := magnitude(m, testRate, f); math.Abs(got-1) > 1e-12 {
					t.Errorf("Design %d kind %d at %g Hz: expected 1, got %v", design, kind, f, got)
				}
			}
		}
	}
}

// TestCoeffs_FirstOrderShelfEdges verifies the first order RC shelves
func TestCoeffs_FirstOrderShelfEdges(t *testing.T) {
	for _, db := range []float64{-12, -6, 3, 15} {
		g := LinearGain(db)

		bass := SynthesizeShelf(testRate, BassFrequency, g, Bass, ShelfFirstOrder, 0)
		if bass.B2 != 0 || bass.A2 != 0 {
			t.Errorf("First order bass %g dB: expected no second order terms, got %+v", db, bass)
		}
		if got := magnitude(bass, testRate, 0); math.Abs(got-g) > 1e-9*g {
			t.Errorf("First order bass %g dB: DC gain expected %g, got %g", db, g, got)
		}
		if got := magnitude(bass, testRate, testRate/2); math.Abs(got-1) > 1e-9 {
			t.Errorf("First order bass %g dB: Nyquist gain expected 1, got %g", db, got)
		}

		treble := SynthesizeShelf(testRate, TrebleFrequency, g, Treble, ShelfFirstOrder, 0)
		if got := magnitude(treble, testRate, 0); math.Abs(got-1) > 1e-9 {
			t.Errorf("First order treble %g dB: DC gain expected 1, got %g", db, got)
		}
		if got := magnitude(treble, testRate, testRate/2); math.Abs(got-g) > 1e-9*g {
			t.Errorf("First order treble %g dB: Nyquist gain expected %g, got %g", db, g, got)
		}
	}
}

// TestCoeffs_PseudoAllPass verifies the pseudo-stereo network is an all-pass
// with a frequency dependent phase for every capacitor preset
func TestCoeffs_PseudoAllPass(t *testing.T) {
	for i, p := range PseudoPresets {
		m := SynthesizePseudoStereo(testRate, p.C1, p.C2)
		if !stable(m) {
			t.Errorf("Preset %d: unstable model %+v", i+1, m)
		}

		for _, f := range []float64{0, 20, 100, 500, 1000, 5000, 15000} {
			if got := magnitude(m, testRate, f); math.Abs(got-1) > 1e-9 {
				t.Errorf("Preset %d at %g Hz: expected unit magnitude, got %v", i+1, f, got)
			}
		}

		if dc := response(m, testRate, 0); math.Abs(real(dc)-1) > 1e-9 {
			t.Errorf("Preset %d: expected DC response +1, got %v", i+1, dc)
		}
		if ph := cmplx.Phase(response(m, testRate, 1000)); math.Abs(ph) < 0.1 {
			t.Errorf("Preset %d: expected phase shift at 1 kHz, got %v rad", i+1, ph)
		}
	}
}

// TestCoeffs_PseudoUsesChipResistors verifies the fixed resistance wrapper
func TestCoeffs_PseudoUsesChipResistors(t *testing.T) {
	got := SynthesizePseudoStereo(48000, 5.6e-9, 47e-9)
	expected := SynthesizePseudoStereoRC(48000, PseudoR1, 5.6e-9, PseudoR2, 47e-9)
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}

	// All-pass numerator is the reversed denominator
	if math.Abs(got.B2-1) > 1e-15 || math.Abs(got.B1+got.A1) > 1e-15 || math.Abs(got.B0+got.A2) > 1e-15 {
		t.Errorf("Not a mirrored all-pass: %+v", got)
	}
}

// TestCoeffs_SampleRateDependence verifies the corner follows the rate
func TestCoeffs_SampleRateDependence(t *testing.T) {
	g := LinearGain(12)
	a := SynthesizeShelvingFilter(44100, BassFrequency, g, Bass)
	b := SynthesizeShelvingFilter(96000, BassFrequency, g, Bass)
	if a == b {
		t.Fatal("Models at different sample rates should differ")
	}

	// Same analog response at a frequency well inside both bands
	ga := magnitude(a, 44100, 300)
	gb := magnitude(b, 96000, 300)
	if math.Abs(ga-gb) > 0.01*ga {
		t.Errorf("Gain at corner: 44.1 kHz %g, 96 kHz %g", ga, gb)
	}
}

// TestCoeffs_CornerAboveNyquist verifies corners at or above Nyquist are
// lowered to MaxCornerRatio and stay stable
func TestCoeffs_CornerAboveNyquist(t *testing.T) {
	for _, rate := range []float64{1000, 7200, 8000, 9000} {
		limit := MaxCornerRatio * rate
		for code := uint8(0); code < ToneCount; code++ {
			for _, kind := range []ShelfKind{Bass, Treble} {
				gain := TrebleGain(code)
				if kind == Bass {
					gain = BassGain(code)
				}

				got := SynthesizeShelvingFilter(rate, TrebleFrequency, gain, kind)
				expected := SynthesizeShelvingFilter(rate, limit, gain, kind)
				if got != expected {
					t.Errorf("Rate %g code %d kind %d: expected corner clamped to %g Hz", rate, code, kind, limit)
				}
				if !stable(got) {
					t.Errorf("Rate %g code %d kind %d: unstable model %+v", rate, code, kind, got)
				}
			}
		}
	}

	// Corners below the limit are untouched
	a := SynthesizeShelvingFilter(testRate, TrebleFrequency, LinearGain(6), Treble)
	b := SynthesizeShelvingFilter(testRate, MaxCornerRatio*testRate, LinearGain(6), Treble)
	if a == b {
		t.Error("Corner below the limit should not be clamped")
	}
}

// TestCoeffs_PinnedValues checks coefficients against values derived
// separately by bilinear transform of the analog prototypes
func TestCoeffs_PinnedValues(t *testing.T) {
	testCases := []struct {
		name     string
		got      BiquadModel
		expected BiquadModel
	}{
		{
			"pseudo 44100 Hz 15/15 nF",
			SynthesizePseudoStereo(44100, 15e-9, 15e-9),
			BiquadModel{0.81731314656644283, -1.8081074598224995, 1, 1.8081074598224995, -0.81731314656644283},
		},
		{
			"pseudo 48000 Hz 5.6/68 nF",
			SynthesizePseudoStereo(48000, 5.6e-9, 68e-9),
			BiquadModel{0.76358975255798811, -1.7591285084561987, 1, 1.7591285084561987, -0.76358975255798811},
		},
		{
			"bass +12 dB 44100 Hz",
			SynthesizeShelvingFilter(44100, BassFrequency, LinearGain(12), Bass),
			BiquadModel{1.031596819332308, -1.9356245929064249, 0.90755996744509149, 1.936947066349014, -0.93783431333481027},
		},
		{
			"treble -9 dB 48000 Hz",
			SynthesizeShelvingFilter(48000, TrebleFrequency, LinearGain(-9), Treble),
			BiquadModel{0.45355220788800349, -0.38990258847100545, 0.078826432522182521, 1.2284328106825873, -0.3709088626217677},
		},
		{
			"first order bass +6 dB 44100 Hz",
			SynthesizeShelf(44100, BassFrequency, LinearGain(6), Bass, ShelfFirstOrder, 0),
			BiquadModel{1.0148336671813418, -0.95535777489731122, 0, 0.97019144207865315, 0},
		},
	}

	for _, tc := range testCases {
		got := [5]float64{tc.got.B0, tc.got.B1, tc.got.B2, tc.got.A1, tc.got.A2}
		expected := [5]float64{tc.expected.B0, tc.expected.B1, tc.expected.B2, tc.expected.A1, tc.expected.A2}
		for i := range got {
			if math.Abs(got[i]-expected[i]) > 1e-12 {
				t.Errorf("%s coefficient %d: expected %.17g, got %.17g", tc.name, i, expected[i], got[i])
			}
		}
	}
}
