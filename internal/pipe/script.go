package pipe

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/user-none/go-chip-tda8425"
)

// scriptSettings are applied in this order after the script has run, so a
// raw register always wins over the named setting that feeds it.
var scriptSettings = []struct {
	name  string
	apply func(o *Options, v starlark.Value) error
}{
	{"config", withString((*Options).SetConfig)},
	{"format", withString((*Options).SetFormat)},
	{"channels", withInt((*Options).SetChannels)},
	{"rate", withFloat((*Options).SetRate)},
	{"pseudo_preset", withInt((*Options).SetPseudoPreset)},
	{"pseudo_c1", withFloat((*Options).SetPseudoC1)},
	{"pseudo_c2", withFloat((*Options).SetPseudoC2)},
	{"volume", withInt((*Options).SetVolume)},
	{"volume_left", withInt((*Options).SetVolumeLeft)},
	{"volume_right", withInt((*Options).SetVolumeRight)},
	{"bass", withInt((*Options).SetBass)},
	{"treble", withInt((*Options).SetTreble)},
	{"selector", withString((*Options).SetSelector)},
	{"mode", withString((*Options).SetMode)},
	{"reg_VL", withRegister("VL")},
	{"reg_VR", withRegister("VR")},
	{"reg_BA", withRegister("BA")},
	{"reg_TR", withRegister("TR")},
	{"reg_SF", withRegister("SF")},
}

// scriptPredeclared exposes the register layout to settings scripts, so
// reg_SF = S2 | SPATIAL << STL reads like the datasheet.
func scriptPredeclared() starlark.StringDict {
	pred := starlark.StringDict{
		"IS":  starlark.MakeInt(tda8425.SFIS),
		"ML0": starlark.MakeInt(tda8425.SFML0),
		"ML1": starlark.MakeInt(tda8425.SFML1),
		"STL": starlark.MakeInt(tda8425.SFSTL),
		"EFL": starlark.MakeInt(tda8425.SFEFL),
		"MU":  starlark.MakeInt(tda8425.SFMU),
	}
	for name, selector := range selectorNames {
		pred[name] = starlark.MakeInt(int(selector))
	}
	for name, mode := range modeNames {
		pred[strings.ToUpper(name)] = starlark.MakeInt(int(mode))
	}
	return pred
}

// LoadScript runs a Starlark settings script and applies the globals it
// assigns. src is as for starlark.ExecFile: nil reads filename. Globals
// starting with an underscore are private to the script.
func (o *Options) LoadScript(filename string, src any) error {
	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, scriptPredeclared())
	if err != nil {
		return err
	}

	known := map[string]bool{}
	for _, setting := range scriptSettings {
		known[setting.name] = true
	}
	for _, name := range globals.Keys() {
		if !known[name] && !strings.HasPrefix(name, "_") {
			return fmt.Errorf("%v: %w: %s", filename, ErrScriptSetting, name)
		}
	}

	for _, setting := range scriptSettings {
		v, ok := globals[setting.name]
		if !ok {
			continue
		}
		if err := setting.apply(o, v); err != nil {
			return fmt.Errorf("%v: %s: %w", filename, setting.name, err)
		}
	}
	return nil
}

func withString(set func(*Options, string) error) func(*Options, starlark.Value) error {
	return func(o *Options, v starlark.Value) error {
		s, ok := starlark.AsString(v)
		if !ok {
			return fmt.Errorf("%w: %s", ErrScriptType, v.Type())
		}
		return set(o, s)
	}
}

func withInt(set func(*Options, int) error) func(*Options, starlark.Value) error {
	return func(o *Options, v starlark.Value) error {
		if _, ok := v.(starlark.Int); !ok {
			return fmt.Errorf("%w: %s", ErrScriptType, v.Type())
		}
		n, err := starlark.AsInt32(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrScriptType, err)
		}
		return set(o, n)
	}
}

func withFloat(set func(*Options, float64) error) func(*Options, starlark.Value) error {
	return func(o *Options, v starlark.Value) error {
		x, ok := starlark.AsFloat(v)
		if !ok {
			return fmt.Errorf("%w: %s", ErrScriptType, v.Type())
		}
		return set(o, x)
	}
}

func withRegister(name string) func(*Options, starlark.Value) error {
	return func(o *Options, v starlark.Value) error {
		n, err := starlark.AsInt32(v)
		if err != nil || n < 0 || n > 0xFF {
			return fmt.Errorf("%w: %v", ErrInvalidRegisterValue, v)
		}
		return o.setRegister(name, uint8(n))
	}
}
