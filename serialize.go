package tda8425

import (
	"encoding/binary"
	"errors"
	"math"
)

const serializeVersion = 1

// version + 5 registers + 5 filter histories of 6 float64 each
const tda8425SerializeSize = 1 + 5 + 5*6*8

// SerializeSize returns the number of bytes needed to serialize the chip state.
// The value is constant and can be used to pre-allocate a reusable buffer.
func (c *Chip) SerializeSize() int {
	return tda8425SerializeSize
}

// Serialize writes the registers and filter histories into buf in a compact
// little-endian binary format. Returns an error if len(buf) < SerializeSize().
// Sample rate, capacitances and Config are host configuration and are not
// included; the caller restores those through New or Setup.
func (c *Chip) Serialize(buf []byte) error {
	if len(buf) < tda8425SerializeSize {
		return errors.New("tda8425: serialize buffer too small")
	}

	buf[0] = serializeVersion
	buf[1] = c.regVL
	buf[2] = c.regVR
	buf[3] = c.regBA
	buf[4] = c.regTR
	buf[5] = c.regSF

	off := 6
	for _, s := range c.states() {
		for _, v := range [6]float64{s.X0, s.X1, s.X2, s.Y0, s.Y1, s.Y2} {
			binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
			off += 8
		}
	}
	return nil
}

// Deserialize restores the state produced by Serialize. Registers are
// replayed through Write so every derived value matches them at the current
// sample rate. Returns an error if the buffer is too small or was produced by
// an incompatible version.
func (c *Chip) Deserialize(buf []byte) error {
	if len(buf) < tda8425SerializeSize {
		return errors.New("tda8425: deserialize buffer too small")
	}
	if buf[0] != serializeVersion {
		return errors.New("tda8425: unsupported serialize version")
	}

	c.Write(RegVL, buf[1])
	c.Write(RegVR, buf[2])
	c.Write(RegBA, buf[3])
	c.Write(RegTR, buf[4])
	c.Write(RegSF, buf[5])

	off := 6
	for _, s := range c.states() {
		var v [6]float64
		for i := range v {
			v[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[off:]))
			off += 8
		}
		s.X0, s.X1, s.X2 = v[0], v[1], v[2]
		s.Y0, s.Y1, s.Y2 = v[3], v[4], v[5]
	}
	return nil
}

// states lists the filter histories in serialization order.
func (c *Chip) states() [5]*BiquadState {
	return [5]*BiquadState{
		&c.pseudoState,
		&c.bassState[Left],
		&c.bassState[Right],
		&c.trebleState[Left],
		&c.trebleState[Right],
	}
}
