// Package catalog holds the wiring of the standard rotors and reflectors.
// The tables are parsed once when the package is loaded and never change
// afterwards.
package catalog

import (
	"fmt"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/cockroachdb/errors"
)

// RotorSpec describes a rotor variant.
type RotorSpec struct {
	Name    string
	Wiring  cryptors.Table
	Inverse cryptors.Table
	Notch   rune
}

// ReflectorSpec describes a reflector variant.
type ReflectorSpec struct {
	Name   string
	Wiring cryptors.Table
}

var (
	// rotorWirings lists the rotor variants in catalog order.  The notch is
	// the position the rotor lands on when it carries into its neighbour.
	rotorWirings = [...]struct {
		name   string
		wiring string
		notch  rune
	}{
		{"I", "EKMFLGDQVZNTOWYHXUSPAIBRCJ", 'R'},
		{"II", "AJDKSIRUXBLHWTMCQGZNPYFVOE", 'F'},
		{"III", "BDFHJLCPRTXVZNYEIWGAKMUSQO", 'W'},
		{"IV", "ESOVPZJAYQUIRHXLNFTGKDCMWB", 'K'},
		{"V", "VZBRGITYUPSDNHLXAWMJQOFECK", 'A'},
	}

	reflectorWirings = [...]struct {
		name   string
		wiring string
	}{
		{"A", "EJMZALYXVBWFCRQUONTSPIKHGD"},
		{"B", "YRUHQSLDPXNGOKMIEBFZCWVJAT"},
		{"C", "FVPJIAOYEDRZXWGCTKUQSBNMHL"},
	}

	rotors     = make(map[string]RotorSpec)
	reflectors = make(map[string]ReflectorSpec)
)

func init() {
	for _, w := range rotorWirings {
		t, err := cryptors.ParseTable(w.wiring)
		if err != nil || !t.IsPermutation() {
			panic(fmt.Sprintf("catalog: bad wiring for rotor %s: %v", w.name, err))
		}
		rotors[w.name] = RotorSpec{Name: w.name, Wiring: t, Inverse: t.Inverse(), Notch: w.notch}
	}

	for _, w := range reflectorWirings {
		t, err := cryptors.ParseTable(w.wiring)
		if err != nil || !t.IsInvolution() {
			panic(fmt.Sprintf("catalog: bad wiring for reflector %s: %v", w.name, err))
		}
		reflectors[w.name] = ReflectorSpec{Name: w.name, Wiring: t}
	}
}

// Rotor looks up a rotor variant by name, ignoring case.
func Rotor(name string) (RotorSpec, error) {
	spec, ok := rotors[strings.ToUpper(name)]
	if !ok {
		return RotorSpec{}, errors.Wrapf(cryptors.ErrUnknownRotor, "%q (have %s)", name, strings.Join(RotorNames(), ", "))
	}
	return spec, nil
}

// Reflector looks up a reflector variant by name, ignoring case.
func Reflector(name string) (ReflectorSpec, error) {
	spec, ok := reflectors[strings.ToUpper(name)]
	if !ok {
		return ReflectorSpec{}, errors.Wrapf(cryptors.ErrUnknownReflector, "%q (have %s)", name, strings.Join(ReflectorNames(), ", "))
	}
	return spec, nil
}

// NewRotor builds the named rotor at the given position and ring setting.
func NewRotor(name string, position, ringSetting rune) (*rotor.Rotor, error) {
	spec, err := Rotor(name)
	if err != nil {
		return nil, err
	}
	return rotor.New(spec.Name, spec.Wiring, spec.Inverse, spec.Notch, position, ringSetting)
}

// NewReflector builds the named reflector.
func NewReflector(name string) (*reflector.Reflector, error) {
	spec, err := Reflector(name)
	if err != nil {
		return nil, err
	}
	return reflector.New(spec.Name, spec.Wiring)
}

func RotorNames() []string {
	names := make([]string, len(rotorWirings))
	for i, w := range rotorWirings {
		names[i] = w.name
	}
	return names
}

func ReflectorNames() []string {
	names := make([]string, len(reflectorWirings))
	for i, w := range reflectorWirings {
		names[i] = w.name
	}
	return names
}

// Rotors returns every rotor variant in catalog order.
func Rotors() []RotorSpec {
	specs := make([]RotorSpec, 0, len(rotorWirings))
	for _, name := range RotorNames() {
		specs = append(specs, rotors[name])
	}
	return specs
}

// Reflectors returns every reflector variant in catalog order.
func Reflectors() []ReflectorSpec {
	specs := make([]ReflectorSpec, 0, len(reflectorWirings))
	for _, name := range ReflectorNames() {
		specs = append(specs, reflectors[name])
	}
	return specs
}
