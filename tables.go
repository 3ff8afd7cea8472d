package tda8425

import "math"

// Datasheet field widths and unity codes
const (
	VolumeBits  = 6
	VolumeCount = 1 << VolumeBits
	VolumeMask  = VolumeCount - 1
	VolumeUnity = 60

	ToneBits  = 4
	ToneCount = 1 << ToneBits
	ToneMask  = ToneCount - 1
	ToneUnity = 6

	SwitchBits = 6
	SwitchMask = 1<<SwitchBits - 1
)

// MuteDecibel is the sentinel gain of the volume codes below the -64 dB step.
const MuteDecibel = -128

// Volume table: register code to dB.
// Codes 0-27 are all muted, then -64 dB to +6 dB in 2 dB steps.
var volumeDecibel = [VolumeCount]int8{
	-128, -128, -128, -128, -128, -128, -128, -128, // 0-7
	-128, -128, -128, -128, -128, -128, -128, -128, // 8-15
	-128, -128, -128, -128, -128, -128, -128, -128, // 16-23
	-128, -128, -128, -128, -64, -62, -60, -58, // 24-31
	-56, -54, -52, -50, -48, -46, -44, -42, // 32-39
	-40, -38, -36, -34, -32, -30, -28, -26, // 40-47
	-24, -22, -20, -18, -16, -14, -12, -10, // 48-55
	-8, -6, -4, -2, 0, +2, +4, +6, // 56-63
}

// Bass saturates at -12 dB below code 3 and at +15 dB from code 11.
var bassDecibel = [ToneCount]int8{
	-12, -12, -12, -9, -6, -3, 0, +3,
	+6, +9, +12, +15, +15, +15, +15, +15,
}

// Treble saturates at -12 dB below code 3 and at +12 dB from code 10.
var trebleDecibel = [ToneCount]int8{
	-12, -12, -12, -9, -6, -3, 0, +3,
	+6, +9, +12, +12, +12, +12, +12, +12,
}

// Linear counterparts of the dB tables, filled once at load time
var (
	volumeGain [VolumeCount]float64
	bassGain   [ToneCount]float64
	trebleGain [ToneCount]float64
)

func init() {
	for i, db := range volumeDecibel {
		volumeGain[i] = LinearGain(float64(db))
	}
	for i, db := range bassDecibel {
		bassGain[i] = LinearGain(float64(db))
	}
	for i, db := range trebleDecibel {
		trebleGain[i] = LinearGain(float64(db))
	}
}

// LinearGain converts a dB value to an amplitude multiplier.
func LinearGain(db float64) float64 {
	return math.Pow(10, db*0.05)
}

// DecibelForVolume returns the dB gain of a volume code (low 6 bits).
func DecibelForVolume(code uint8) int8 {
	return volumeDecibel[code&VolumeMask]
}

// DecibelForBass returns the dB gain of a bass code (low 4 bits).
func DecibelForBass(code uint8) int8 {
	return bassDecibel[code&ToneMask]
}

// DecibelForTreble returns the dB gain of a treble code (low 4 bits).
func DecibelForTreble(code uint8) int8 {
	return trebleDecibel[code&ToneMask]
}

// VolumeGain returns the precomputed linear gain of a volume code.
func VolumeGain(code uint8) float64 {
	return volumeGain[code&VolumeMask]
}

// BassGain returns the precomputed linear gain of a bass code.
func BassGain(code uint8) float64 {
	return bassGain[code&ToneMask]
}

// TrebleGain returns the precomputed linear gain of a treble code.
func TrebleGain(code uint8) float64 {
	return trebleGain[code&ToneMask]
}

// VolumeCode returns the lowest volume code with the given dB gain.
func VolumeCode(db int) (uint8, bool) {
	return lookupCode(volumeDecibel[:], db)
}

// BassCode returns the lowest bass code with the given dB gain.
func BassCode(db int) (uint8, bool) {
	return lookupCode(bassDecibel[:], db)
}

// TrebleCode returns the lowest treble code with the given dB gain.
func TrebleCode(db int) (uint8, bool) {
	return lookupCode(trebleDecibel[:], db)
}

func lookupCode(table []int8, db int) (uint8, bool) {
	for code, v := range table {
		if int(v) == db {
			return uint8(code), true
		}
	}
	return 0, false
}
