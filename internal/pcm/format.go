// Package pcm converts between raw interleaved sample streams and the
// normalized float frames processed by the chip.
package pcm

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Format is a raw sample encoding.
type Format int

const (
	U8 Format = iota
	S8
	U16LE
	U16BE
	S16LE
	S16BE
	U32LE
	U32BE
	S32LE
	S32BE
	U64LE
	U64BE
	S64LE
	S64BE
	FloatLE
	FloatBE
	Float64LE
	Float64BE

	formatCount
)

type formatInfo struct {
	name   string
	bits   int
	signed bool
	float  bool
	order  binary.ByteOrder
}

var formatTable = [formatCount]formatInfo{
	U8:        {"U8", 8, false, false, binary.LittleEndian},
	S8:        {"S8", 8, true, false, binary.LittleEndian},
	U16LE:     {"U16_LE", 16, false, false, binary.LittleEndian},
	U16BE:     {"U16_BE", 16, false, false, binary.BigEndian},
	S16LE:     {"S16_LE", 16, true, false, binary.LittleEndian},
	S16BE:     {"S16_BE", 16, true, false, binary.BigEndian},
	U32LE:     {"U32_LE", 32, false, false, binary.LittleEndian},
	U32BE:     {"U32_BE", 32, false, false, binary.BigEndian},
	S32LE:     {"S32_LE", 32, true, false, binary.LittleEndian},
	S32BE:     {"S32_BE", 32, true, false, binary.BigEndian},
	U64LE:     {"U64_LE", 64, false, false, binary.LittleEndian},
	U64BE:     {"U64_BE", 64, false, false, binary.BigEndian},
	S64LE:     {"S64_LE", 64, true, false, binary.LittleEndian},
	S64BE:     {"S64_BE", 64, true, false, binary.BigEndian},
	FloatLE:   {"FLOAT_LE", 32, true, true, binary.LittleEndian},
	FloatBE:   {"FLOAT_BE", 32, true, true, binary.BigEndian},
	Float64LE: {"FLOAT64_LE", 64, true, true, binary.LittleEndian},
	Float64BE: {"FLOAT64_BE", 64, true, true, binary.BigEndian},
}

// Formats lists every format in table order.
func Formats() []Format {
	formats := make([]Format, formatCount)
	for i := range formats {
		formats[i] = Format(i)
	}
	return formats
}

// ParseFormat looks a format up by its name, as in "S16_LE".
func ParseFormat(name string) (Format, error) {
	for i, info := range formatTable {
		if info.name == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

func (f Format) String() string {
	if f < 0 || f >= formatCount {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatTable[f].name
}

// Size returns the number of bytes of one sample.
func (f Format) Size() int {
	return formatTable[f].bits / 8
}

// Decode converts one sample from b to [-1, +1). Integer samples are scaled
// by 2^(bits-1); unsigned samples are offset binary.
func (f Format) Decode(b []byte) float64 {
	info := &formatTable[f]

	if info.float {
		if info.bits == 32 {
			return float64(math.Float32frombits(info.order.Uint32(b)))
		}
		return math.Float64frombits(info.order.Uint64(b))
	}

	var v int64
	switch info.bits {
	case 8:
		u := b[0]
		if !info.signed {
			u ^= 0x80
		}
		v = int64(int8(u))
	case 16:
		u := info.order.Uint16(b)
		if !info.signed {
			u ^= 0x8000
		}
		v = int64(int16(u))
	case 32:
		u := info.order.Uint32(b)
		if !info.signed {
			u ^= 0x80000000
		}
		v = int64(int32(u))
	case 64:
		u := info.order.Uint64(b)
		if !info.signed {
			u ^= 0x8000000000000000
		}
		v = int64(u)
	}
	return float64(v) / math.Ldexp(1, info.bits-1)
}

// Encode stores v into b. Integer samples are scaled by 2^(bits-1), clamped
// to the signed range and truncated toward zero.
func (f Format) Encode(b []byte, v float64) {
	info := &formatTable[f]

	if info.float {
		if info.bits == 32 {
			info.order.PutUint32(b, math.Float32bits(float32(v)))
		} else {
			info.order.PutUint64(b, math.Float64bits(v))
		}
		return
	}

	s := quantize(v, info.bits)
	switch info.bits {
	case 8:
		u := uint8(s)
		if !info.signed {
			u ^= 0x80
		}
		b[0] = u
	case 16:
		u := uint16(s)
		if !info.signed {
			u ^= 0x8000
		}
		info.order.PutUint16(b, u)
	case 32:
		u := uint32(s)
		if !info.signed {
			u ^= 0x80000000
		}
		info.order.PutUint32(b, u)
	case 64:
		u := uint64(s)
		if !info.signed {
			u ^= 0x8000000000000000
		}
		info.order.PutUint64(b, u)
	}
}

// quantize scales v to a signed integer of the given width.
// NaN quantizes to 0.
func quantize(v float64, bits int) int64 {
	scale := math.Ldexp(1, bits-1)
	x := v * scale
	switch {
	case math.IsNaN(x):
		return 0
	case x >= scale:
		// compared as float, 2^63 itself does not convert
		return math.MaxInt64 >> (64 - bits)
	case x <= -scale:
		return math.MinInt64 >> (64 - bits)
	}
	return int64(x)
}
