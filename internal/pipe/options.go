// Package pipe turns user facing parameters into chip register values and
// streams frames through a chip.
package pipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user-none/go-chip-tda8425"
	"github.com/user-none/go-chip-tda8425/internal/pcm"
)

// MaxChannels is the highest useful input channel count.
const MaxChannels = tda8425.InputCount

// Options holds the stream layout and the register values a run starts
// with. Setters apply in call order, so later ones override earlier ones.
type Options struct {
	Channels int
	Format   pcm.Format
	Rate     float64 // Hz
	PseudoC1 float64 // F
	PseudoC2 float64 // F
	Config   tda8425.Config

	VL, VR, BA, TR, SF uint8

	rateSet bool
}

// NewOptions returns mono U8 input at 44100 Hz with every control at unity,
// source 1 selected in linear stereo and pseudo preset 1.
func NewOptions() *Options {
	preset := tda8425.PseudoPresets[0]
	return &Options{
		Channels: 1,
		Format:   pcm.U8,
		Rate:     44100,
		PseudoC1: preset.C1,
		PseudoC2: preset.C2,
		Config:   tda8425.Datasheet,
		VL:       tda8425.VolumeUnity,
		VR:       tda8425.VolumeUnity,
		BA:       tda8425.ToneUnity,
		TR:       tda8425.ToneUnity,
		SF:       uint8(tda8425.SelectorStereo1) | uint8(tda8425.ModeLinearStereo)<<tda8425.SFSTL,
	}
}

var modeNames = map[string]tda8425.Mode{
	"mono":    tda8425.ModeForcedMono,
	"linear":  tda8425.ModeLinearStereo,
	"pseudo":  tda8425.ModePseudoStereo,
	"spatial": tda8425.ModeSpatialStereo,
}

var selectorNames = map[string]tda8425.Selector{
	"S1": tda8425.SelectorStereo1,
	"A1": tda8425.SelectorSoundA1,
	"B1": tda8425.SelectorSoundB1,
	"S2": tda8425.SelectorStereo2,
	"A2": tda8425.SelectorSoundA2,
	"B2": tda8425.SelectorSoundB2,
}

var configNames = map[string]tda8425.Config{
	"datasheet": tda8425.Datasheet,
	"alternate": tda8425.Alternate,
}

// SetBass sets BA from a bass gain in dB.
func (o *Options) SetBass(db int) error {
	code, ok := tda8425.BassCode(db)
	if !ok {
		return fmt.Errorf("%w: bass %d", ErrUnsupportedGain, db)
	}
	o.BA = code
	return nil
}

// SetTreble sets TR from a treble gain in dB.
func (o *Options) SetTreble(db int) error {
	code, ok := tda8425.TrebleCode(db)
	if !ok {
		return fmt.Errorf("%w: treble %d", ErrUnsupportedGain, db)
	}
	o.TR = code
	return nil
}

// SetVolume sets both channel volumes.
func (o *Options) SetVolume(db int) error {
	code, ok := tda8425.VolumeCode(db)
	if !ok {
		return fmt.Errorf("%w: volume %d", ErrUnsupportedGain, db)
	}
	o.VL = code
	o.VR = code
	return nil
}

// SetVolumeLeft sets VL from a volume gain in dB.
func (o *Options) SetVolumeLeft(db int) error {
	code, ok := tda8425.VolumeCode(db)
	if !ok {
		return fmt.Errorf("%w: volume %d", ErrUnsupportedGain, db)
	}
	o.VL = code
	return nil
}

// SetVolumeRight sets VR from a volume gain in dB.
func (o *Options) SetVolumeRight(db int) error {
	code, ok := tda8425.VolumeCode(db)
	if !ok {
		return fmt.Errorf("%w: volume %d", ErrUnsupportedGain, db)
	}
	o.VR = code
	return nil
}

// SetMode replaces the EFL.STL bits of SF.
func (o *Options) SetMode(name string) error {
	mode, ok := modeNames[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	const modeBits = uint8(3) << tda8425.SFSTL
	o.SF = o.SF&^modeBits | uint8(mode)<<tda8425.SFSTL
	return nil
}

// SetSelector replaces the ML1.ML0.IS bits of SF.
func (o *Options) SetSelector(name string) error {
	selector, ok := selectorNames[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSelector, name)
	}
	const selectorBits = uint8(7)
	o.SF = o.SF&^selectorBits | uint8(selector)
	return nil
}

// SetPseudoPreset picks capacitor preset n, counting from 1.
func (o *Options) SetPseudoPreset(n int) error {
	if n < 1 || n > len(tda8425.PseudoPresets) {
		return fmt.Errorf("%w: %d", ErrInvalidPreset, n)
	}
	preset := tda8425.PseudoPresets[n-1]
	o.PseudoC1 = preset.C1
	o.PseudoC2 = preset.C2
	return nil
}

// SetPseudoC1 sets the first pseudo-stereo capacitance in F.
func (o *Options) SetPseudoC1(farad float64) error {
	if !(farad > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidCapacitance, farad)
	}
	o.PseudoC1 = farad
	return nil
}

// SetPseudoC2 sets the second pseudo-stereo capacitance in F.
func (o *Options) SetPseudoC2(farad float64) error {
	if !(farad > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidCapacitance, farad)
	}
	o.PseudoC2 = farad
	return nil
}

// SetRegister stores a raw register value given as hexadecimal, with or
// without a 0x prefix.
func (o *Options) SetRegister(name, value string) error {
	digits := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRegisterValue, value)
	}
	return o.setRegister(name, uint8(v))
}

func (o *Options) setRegister(name string, v uint8) error {
	switch name {
	case "VL":
		o.VL = v
	case "VR":
		o.VR = v
	case "BA":
		o.BA = v
	case "TR":
		o.TR = v
	case "SF":
		o.SF = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownRegister, name)
	}
	return nil
}

// SetChannels sets the input channel count. Counts above MaxChannels are
// clamped.
func (o *Options) SetChannels(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, n)
	}
	o.Channels = min(n, MaxChannels)
	return nil
}

// SetRate sets the sample rate in Hz.
func (o *Options) SetRate(hz float64) error {
	if !(hz >= 1) {
		return fmt.Errorf("%w: %g", ErrInvalidRate, hz)
	}
	o.Rate = hz
	o.rateSet = true
	return nil
}

// RateSet reports whether SetRate has succeeded, from a flag or a script.
// A container's own rate only replaces the default.
func (o *Options) RateSet() bool {
	return o.rateSet
}

// SetFormat selects the raw sample format by name, as in "S16_LE".
func (o *Options) SetFormat(name string) error {
	format, err := pcm.ParseFormat(name)
	if err != nil {
		return err
	}
	o.Format = format
	return nil
}

// SetConfig selects the analog constant set, "datasheet" or "alternate".
func (o *Options) SetConfig(name string) error {
	config, ok := configNames[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownConfig, name)
	}
	o.Config = config
	return nil
}

// Summary describes the options for verbose output.
func (o *Options) Summary() string {
	return f("%d x %v at %g Hz, %v %v, C1 %g F, C2 %g F, VL %02X VR %02X BA %02X TR %02X SF %02X",
		o.Channels, o.Format, o.Rate,
		tda8425.Selector(o.SF&7), tda8425.Mode(o.SF>>tda8425.SFSTL&3),
		o.PseudoC1, o.PseudoC2,
		o.VL, o.VR, o.BA, o.TR, o.SF)
}
