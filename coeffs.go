package tda8425

import "math"

// Pseudo-stereo network resistances inside the chip (ohm)
const (
	PseudoR1 = 15000.0
	PseudoR2 = 15000.0
)

// Corner frequencies of the tone controls (Hz)
const (
	BassFrequency   = 300.0
	TrebleFrequency = 4500.0
)

// ShelfSlope is the shelf slope S used by the cookbook shelving design.
const ShelfSlope = 0.5

// MaxCornerRatio limits a cookbook shelf corner to this fraction of the
// sample rate. At or above Nyquist the design has poles outside the unit
// circle.
const MaxCornerRatio = 0.45

// ShelfKind selects a low shelf (bass) or a high shelf (treble).
type ShelfKind int

const (
	Bass ShelfKind = iota
	Treble
)

// ShelfDesign selects how a shelving filter is discretized.
type ShelfDesign int

const (
	ShelfCookbook   ShelfDesign = iota // second order, audio EQ cookbook
	ShelfFirstOrder                    // first order bilinear RC shelf
)

// PseudoPreset is a pair of external pseudo-stereo capacitances (F).
type PseudoPreset struct {
	C1, C2 float64
}

// Capacitor presets from the datasheet application circuit
var PseudoPresets = [3]PseudoPreset{
	{C1: 15e-9, C2: 15e-9},
	{C1: 5.6e-9, C2: 47e-9},
	{C1: 5.6e-9, C2: 68e-9},
}

// SynthesizePseudoStereo returns the pseudo-stereo all-pass model for the
// chip's internal resistances and the given capacitances. c1 and c2 must be
// positive; they are not checked.
func SynthesizePseudoStereo(sampleRate, c1, c2 float64) BiquadModel {
	return SynthesizePseudoStereoRC(sampleRate, PseudoR1, c1, PseudoR2, c2)
}

// SynthesizePseudoStereoRC models two cascaded first-order RC all-pass
// sections
//
//	H(s) = (1 - s*t1)/(1 + s*t1) * (1 - s*t2)/(1 + s*t2)
//
// with t1 = r1*c1 and t2 = r2*c2, discretized by s = 2*fs*(z-1)/(z+1).
func SynthesizePseudoStereoRC(sampleRate, r1, c1, r2, c2 float64) BiquadModel {
	k := 0.5 / sampleRate
	t1 := r1 * c1
	t2 := r2 * c2

	kk := k * k
	t12 := t1 * t2
	tk := (t1 + t2) * k

	a0 := kk + t12 + tk
	a1 := (kk - t12) * 2
	a2 := kk + t12 - tk

	// All-pass: numerator is the reversed denominator
	return normalize(a2, a1, a0, a0, a1, a2)
}

// SynthesizeShelvingFilter returns the chip's tone control model: a cookbook
// low shelf (Bass) or high shelf (Treble) with slope ShelfSlope. Gains below
// unity cut with the same shelf shape.
func SynthesizeShelvingFilter(sampleRate, corner, gain float64, kind ShelfKind) BiquadModel {
	return SynthesizeShelf(sampleRate, corner, gain, kind, ShelfCookbook, ShelfSlope)
}

// SynthesizeShelf returns a shelving model of the given design. slope is
// only used by ShelfCookbook, which also lowers corners above
// MaxCornerRatio*sampleRate to that limit.
func SynthesizeShelf(sampleRate, corner, gain float64, kind ShelfKind, design ShelfDesign, slope float64) BiquadModel {
	if design == ShelfFirstOrder {
		return firstOrderShelf(sampleRate, corner, gain, kind)
	}
	return cookbookShelf(sampleRate, corner, gain, kind, slope)
}

func cookbookShelf(sampleRate, corner, gain float64, kind ShelfKind, slope float64) BiquadModel {
	corner = min(corner, MaxCornerRatio*sampleRate)

	A := math.Sqrt(gain)
	w0 := 2 * math.Pi * corner / sampleRate
	cosW := math.Cos(w0)
	alpha := math.Sin(w0) / 2 * math.Sqrt((A+1/A)*(1/slope-1)+2)
	sqrtAAlpha := 2 * math.Sqrt(A) * alpha

	if kind == Treble {
		b0 := A * ((A + 1) + (A-1)*cosW + sqrtAAlpha)
		b1 := -2 * A * ((A - 1) + (A+1)*cosW)
		b2 := A * ((A + 1) + (A-1)*cosW - sqrtAAlpha)
		a0 := (A + 1) - (A-1)*cosW + sqrtAAlpha
		a1 := 2 * ((A - 1) - (A+1)*cosW)
		a2 := (A + 1) - (A-1)*cosW - sqrtAAlpha
		return normalize(b0, b1, b2, a0, a1, a2)
	}

	b0 := A * ((A + 1) - (A-1)*cosW + sqrtAAlpha)
	b1 := 2 * A * ((A - 1) - (A+1)*cosW)
	b2 := A * ((A + 1) - (A-1)*cosW - sqrtAAlpha)
	a0 := (A + 1) + (A-1)*cosW + sqrtAAlpha
	a1 := -2 * ((A - 1) + (A+1)*cosW)
	a2 := (A + 1) + (A-1)*cosW - sqrtAAlpha
	return normalize(b0, b1, b2, a0, a1, a2)
}

// firstOrderShelf discretizes the RC shelves with g = sqrt(gain):
//
//	bass:   H(s) = (s + w*g) / (s + w/g)
//	treble: H(s) = g^2 * (s + w/g) / (s + w*g)
func firstOrderShelf(sampleRate, corner, gain float64, kind ShelfKind) BiquadModel {
	g := math.Sqrt(gain)
	kw := 0.5 / sampleRate * 2 * math.Pi * corner

	if kind == Treble {
		a0 := kw*g + 1
		a1 := kw*g - 1
		b0 := g * (g + kw)
		b1 := g * (kw - g)
		return normalize(b0, b1, 0, a0, a1, 0)
	}

	a0 := kw + g
	a1 := kw - g
	b0 := kw*g*g + g
	b1 := kw*g*g - g
	return normalize(b0, b1, 0, a0, a1, 0)
}

// normalize divides by a0 and negates the feedback coefficients.
func normalize(b0, b1, b2, a0, a1, a2 float64) BiquadModel {
	ra0 := 1 / a0
	return BiquadModel{
		B0: b0 * ra0,
		B1: b1 * ra0,
		B2: b2 * ra0,
		A1: a1 * -ra0,
		A2: a2 * -ra0,
	}
}
