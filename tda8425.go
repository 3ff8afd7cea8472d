package tda8425

// Register addresses
const (
	RegVL uint8 = 0x00 // volume left
	RegVR uint8 = 0x01 // volume right
	RegBA uint8 = 0x02 // bass
	RegTR uint8 = 0x03 // treble
	RegSF uint8 = 0x08 // switch functions
)

// SF register bits
const (
	SFIS  = 0 // input selector
	SFML0 = 1 // mode selector 0
	SFML1 = 2 // mode selector 1
	SFSTL = 3 // stereo linear
	SFEFL = 4 // stereo effect
	SFMU  = 5 // mute
)

// Stereo channels
const (
	Left  = 0
	Right = 1

	StereoCount = 2
)

// Frame slots of the two stereo input sources
const (
	Source1Left  = 0
	Source1Right = 1
	Source2Left  = 2
	Source2Right = 3

	InputCount = 4
)

// Frame is one input sample per source channel, normalized to [-1, +1].
// Channels without a feed are 0.
type Frame [InputCount]float64

// Stereo is one output frame. It is not clamped.
type Stereo [StereoCount]float64

// Selector is the ML1.ML0.IS field of SF.
type Selector uint8

const (
	SelectorSoundA1 Selector = 2 // source 1 left on both channels
	SelectorSoundA2 Selector = 3 // source 2 left on both channels
	SelectorSoundB1 Selector = 4 // source 1 right on both channels
	SelectorSoundB2 Selector = 5 // source 2 right on both channels
	SelectorStereo1 Selector = 6
	SelectorStereo2 Selector = 7

	selectorMask = 7
)

func (s Selector) String() string {
	switch s {
	case SelectorSoundA1:
		return "A1"
	case SelectorSoundA2:
		return "A2"
	case SelectorSoundB1:
		return "B1"
	case SelectorSoundB2:
		return "B2"
	case SelectorStereo1:
		return "S1"
	case SelectorStereo2:
		return "S2"
	}
	return "invalid"
}

// Mode is the EFL.STL field of SF.
type Mode uint8

const (
	ModeForcedMono    Mode = 0
	ModeLinearStereo  Mode = 1
	ModePseudoStereo  Mode = 2
	ModeSpatialStereo Mode = 3

	modeMask = 3
)

func (m Mode) String() string {
	switch m {
	case ModeForcedMono:
		return "mono"
	case ModeLinearStereo:
		return "linear"
	case ModePseudoStereo:
		return "pseudo"
	case ModeSpatialStereo:
		return "spatial"
	}
	return "invalid"
}

// SpatialFormula selects how spatial stereo mixes the channels.
type SpatialFormula int

const (
	// SpatialCrosstalk: L' = L + k*(L-R), R' = R + k*(R-L)
	SpatialCrosstalk SpatialFormula = iota
	// SpatialAntiphase: L' = L - k*R, R' = R - k*L
	SpatialAntiphase
)

// Config holds the analog constants of an emulated chip.
type Config struct {
	BassFrequency   float64 // Hz
	TrebleFrequency float64 // Hz
	ShelfDesign     ShelfDesign
	ShelfSlope      float64
	PseudoR1        float64 // ohm
	PseudoR2        float64 // ohm
	Spatial         SpatialFormula
	Crosstalk       float64 // spatial crosstalk ratio
}

// Datasheet is the default constant set.
var Datasheet = Config{
	BassFrequency:   BassFrequency,
	TrebleFrequency: TrebleFrequency,
	ShelfDesign:     ShelfCookbook,
	ShelfSlope:      ShelfSlope,
	PseudoR1:        PseudoR1,
	PseudoR2:        PseudoR2,
	Spatial:         SpatialCrosstalk,
	Crosstalk:       0.52,
}

// Alternate uses the 3.6 kHz treble corner, 13k pseudo resistances and the
// antiphase spatial mix.
var Alternate = Config{
	BassFrequency:   BassFrequency,
	TrebleFrequency: 3600,
	ShelfDesign:     ShelfCookbook,
	ShelfSlope:      ShelfSlope,
	PseudoR1:        13000,
	PseudoR2:        13000,
	Spatial:         SpatialAntiphase,
	Crosstalk:       0.52,
}

// State is the lifecycle state of a chip.
type State int

const (
	StateReady   State = iota // registers reset, not started
	StateRunning              // histories cleared by Start
	StateStopped
)

// Emulates the TDA8425 hi-fi stereo audio processor
// - 2 stereo sources with a 6-way selector
// - forced mono, linear, pseudo and spatial stereo modes
// - per channel volume, shared bass and treble controls
//
// A Chip is not safe for concurrent use; use one per stream.
type Chip struct {
	// Raw registers, unused bits set
	regVL uint8
	regVR uint8
	regBA uint8
	regTR uint8
	regSF uint8

	// Derived from SF
	selector Selector
	mode     Mode
	muted    bool

	// Linear volume per channel, derived from VL/VR
	volume [StereoCount]float64

	// Pseudo-stereo all-pass on the left channel
	pseudoModel BiquadModel
	pseudoState BiquadState

	// Tone controls: one model each, independent history per channel
	bassModel   BiquadModel
	bassState   [StereoCount]BiquadState
	trebleModel BiquadModel
	trebleState [StereoCount]BiquadState

	sampleRate float64
	pseudoC1   float64
	pseudoC2   float64
	config     Config
	state      State

	// Block scratch (reused across calls)
	left   []float64
	right  []float64
	oneIn  [1]Frame
	oneOut [1]Stereo
}

// New creates a chip configured for sampleRate (Hz) and the pseudo-stereo
// capacitances c1, c2 (F), with all registers reset.
// config selects the analog constants (normally Datasheet).
func New(sampleRate, pseudoC1, pseudoC2 float64, config Config) *Chip {
	c := &Chip{config: config}
	c.Setup(sampleRate, pseudoC1, pseudoC2)
	c.Reset()
	return c
}

// Setup changes the sample rate and pseudo-stereo capacitances. The pseudo
// model is rebuilt and the tone models are re-derived from the current BA
// and TR registers at the new rate.
func (c *Chip) Setup(sampleRate, pseudoC1, pseudoC2 float64) {
	c.sampleRate = sampleRate
	c.pseudoC1 = pseudoC1
	c.pseudoC2 = pseudoC2

	c.pseudoModel = SynthesizePseudoStereoRC(sampleRate,
		c.config.PseudoR1, pseudoC1, c.config.PseudoR2, pseudoC2)

	c.Write(RegBA, c.regBA)
	c.Write(RegTR, c.regTR)
}

// Reset writes zero to every register.
// Filter histories are kept; call Start to clear them.
func (c *Chip) Reset() {
	c.Write(RegVL, 0)
	c.Write(RegVR, 0)
	c.Write(RegBA, 0)
	c.Write(RegTR, 0)
	c.Write(RegSF, 0)
	c.state = StateReady
}

// Start clears all filter histories.
func (c *Chip) Start() {
	c.pseudoState.Clear(0)
	for ch := 0; ch < StereoCount; ch++ {
		c.bassState[ch].Clear(0)
		c.trebleState[ch].Clear(0)
	}
	c.state = StateRunning
}

// Stop ends a run. There is nothing to release.
func (c *Chip) Stop() {
	c.state = StateStopped
}

// Write stores a register and re-derives the state it controls.
// Unused bits are stored as ones. Unknown addresses are ignored.
func (c *Chip) Write(address uint8, value uint8) {
	switch address {
	case RegVL:
		value |= ^uint8(VolumeMask)
		c.regVL = value
		c.volume[Left] = VolumeGain(value)

	case RegVR:
		value |= ^uint8(VolumeMask)
		c.regVR = value
		c.volume[Right] = VolumeGain(value)

	case RegBA:
		value |= ^uint8(ToneMask)
		c.regBA = value
		c.bassModel = c.toneModel(Bass, c.config.BassFrequency, BassGain(value))

	case RegTR:
		value |= ^uint8(ToneMask)
		c.regTR = value
		c.trebleModel = c.toneModel(Treble, c.config.TrebleFrequency, TrebleGain(value))

	case RegSF:
		value |= ^uint8(SwitchMask)
		c.regSF = value
		c.selector = Selector(value & selectorMask)
		c.mode = Mode((value >> SFSTL) & modeMask)
		c.muted = value&(1<<SFMU) != 0
	}
}

func (c *Chip) toneModel(kind ShelfKind, corner, gain float64) BiquadModel {
	return SynthesizeShelf(c.sampleRate, corner, gain, kind, c.config.ShelfDesign, c.config.ShelfSlope)
}

// Read returns a register with its unused bits set.
// Unknown addresses read as 0xFF.
func (c *Chip) Read(address uint8) uint8 {
	switch address {
	case RegVL:
		return c.regVL | ^uint8(VolumeMask)
	case RegVR:
		return c.regVR | ^uint8(VolumeMask)
	case RegBA:
		return c.regBA | ^uint8(ToneMask)
	case RegTR:
		return c.regTR | ^uint8(ToneMask)
	case RegSF:
		return c.regSF | ^uint8(SwitchMask)
	}
	return 0xFF
}

// Process runs one frame through the chip.
func (c *Chip) Process(in Frame) Stereo {
	c.oneIn[0] = in
	c.ProcessBlock(c.oneIn[:], c.oneOut[:])
	return c.oneOut[0]
}

// ProcessBlock runs min(len(in), len(out)) frames through the chip and
// returns that count. Frames processed with an invalid selector or mode are
// silent and leave the filters untouched. When muted the filters keep
// running but the output is silent.
func (c *Chip) ProcessBlock(in []Frame, out []Stereo) int {
	n := min(len(in), len(out))
	if n == 0 {
		return 0
	}
	in, out = in[:n], out[:n]

	if cap(c.left) < n {
		c.left = make([]float64, n)
		c.right = make([]float64, n)
	}
	left, right := c.left[:n], c.right[:n]

	if !c.selectSource(in, left, right) || !c.applyMode(left, right) {
		clear(out)
		return n
	}

	for ch, buf := range [StereoCount][]float64{left, right} {
		gain := c.volume[ch]
		for i := range buf {
			buf[i] *= gain
		}
		c.bassState[ch].ProcessVector(&c.bassModel, buf, buf)
		c.trebleState[ch].ProcessVector(&c.trebleModel, buf, buf)
	}

	if c.muted {
		clear(out)
		return n
	}
	for i := range out {
		out[i] = Stereo{left[i], right[i]}
	}
	return n
}

// selectSource routes the selected inputs into left and right.
func (c *Chip) selectSource(in []Frame, left, right []float64) bool {
	var l, r int
	switch c.selector {
	case SelectorSoundA1:
		l, r = Source1Left, Source1Left
	case SelectorSoundA2:
		l, r = Source2Left, Source2Left
	case SelectorSoundB1:
		l, r = Source1Right, Source1Right
	case SelectorSoundB2:
		l, r = Source2Right, Source2Right
	case SelectorStereo1:
		l, r = Source1Left, Source1Right
	case SelectorStereo2:
		l, r = Source2Left, Source2Right
	default:
		return false
	}
	for i := range in {
		left[i] = in[i][l]
		right[i] = in[i][r]
	}
	return true
}

func (c *Chip) applyMode(left, right []float64) bool {
	switch c.mode {
	case ModeForcedMono:
		copy(right, left)

	case ModeLinearStereo:

	case ModePseudoStereo:
		c.pseudoState.ProcessVector(&c.pseudoModel, left, left)

	case ModeSpatialStereo:
		k := c.config.Crosstalk
		if c.config.Spatial == SpatialAntiphase {
			for i := range left {
				l, r := left[i], right[i]
				left[i] = l - r*k
				right[i] = r - l*k
			}
		} else {
			for i := range left {
				l, r := left[i], right[i]
				left[i] = l + (l-r)*k
				right[i] = r + (r-l)*k
			}
		}

	default:
		return false
	}
	return true
}

// SampleRate returns the configured sample rate in Hz.
func (c *Chip) SampleRate() float64 {
	return c.sampleRate
}

// PseudoCapacitors returns the configured C1 and C2 in F.
func (c *Chip) PseudoCapacitors() (float64, float64) {
	return c.pseudoC1, c.pseudoC2
}

// Config returns the analog constants the chip was built with.
func (c *Chip) Config() Config {
	return c.config
}

// State returns the lifecycle state.
func (c *Chip) State() State {
	return c.state
}

// Selector returns the source selector decoded from SF.
func (c *Chip) Selector() Selector {
	return c.selector
}

// Mode returns the stereo mode decoded from SF.
func (c *Chip) Mode() Mode {
	return c.mode
}

// Muted reports whether the SF mute bit is set.
func (c *Chip) Muted() bool {
	return c.muted
}

// Volume returns the linear volume of a channel (Left or Right).
func (c *Chip) Volume(ch int) float64 {
	return c.volume[ch]
}

// PseudoModel returns the current pseudo-stereo coefficients.
func (c *Chip) PseudoModel() BiquadModel {
	return c.pseudoModel
}

// BassModel returns the current bass coefficients.
func (c *Chip) BassModel() BiquadModel {
	return c.bassModel
}

// TrebleModel returns the current treble coefficients.
func (c *Chip) TrebleModel() BiquadModel {
	return c.trebleModel
}
