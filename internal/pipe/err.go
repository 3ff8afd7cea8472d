package pipe

import (
	"errors"

	"github.com/user-none/go-chip-tda8425/internal/translate"
)

var f = translate.From

var (
	// Parameter errors
	ErrUnsupportedGain      = errors.New(f("unsupported decibel gain"))
	ErrUnknownMode          = errors.New(f("unknown mode"))
	ErrUnknownSelector      = errors.New(f("unknown selector"))
	ErrUnknownRegister      = errors.New(f("unknown register"))
	ErrInvalidRegisterValue = errors.New(f("invalid register value"))
	ErrInvalidPreset        = errors.New(f("invalid pseudo preset"))
	ErrInvalidCapacitance   = errors.New(f("invalid capacitance"))
	ErrInvalidChannels      = errors.New(f("invalid channels"))
	ErrInvalidRate          = errors.New(f("invalid rate"))
	ErrUnknownConfig        = errors.New(f("unknown config"))

	// Script errors
	ErrScriptSetting = errors.New(f("unknown script setting"))
	ErrScriptType    = errors.New(f("wrong script value type"))
)
