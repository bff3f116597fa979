/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/bitops"
	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

var ErrInvalidSettings = errors.New("invalid machine settings")

// Settings is everything needed to build a machine in a known state.
type Settings struct {
	Rotors    [3]string `yaml:"rotors"`
	Positions string    `yaml:"positions"`
	Rings     string    `yaml:"rings"`
	Reflector string    `yaml:"reflector"`
	Plugboard []string  `yaml:"plugboard,omitempty"`
}

// Names of the settings as they appear in the config file, the environment
// (ENIGMA_ prefixed) and the PEM headers.
const (
	rotorsKey    = "rotors"
	positionsKey = "positions"
	ringsKey     = "rings"
	reflectorKey = "reflector"
	plugboardKey = "plugboard"
)

// fields splits a setting on spaces and commas.
func fields(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// parseLetters upper cases a string of exactly three letters.
func parseLetters(what, s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "", errors.Wrapf(ErrInvalidSettings, "%s %q must be three letters", what, s)
	}
	for _, r := range s {
		if !cryptors.IsLetter(r) {
			return "", errors.Wrapf(ErrInvalidSettings, "%s %q: %v", what, s, cryptors.ErrNotALetter)
		}
	}
	return s, nil
}

// ParseSettings checks and normalizes the textual form of the settings.
// rotors and plugboard are lists separated by spaces or commas; rotors are
// given left to right.
func ParseSettings(rotors, positions, rings, reflector, plugboard string) (Settings, error) {
	var s Settings
	var err error

	names := fields(rotors)
	if len(names) != 3 {
		return s, errors.Wrapf(ErrInvalidSettings, "need three rotors, got %q", rotors)
	}
	used := make(map[string]bool)
	for i, name := range names {
		spec, err := catalog.Rotor(name)
		if err != nil {
			return s, errors.Mark(err, ErrInvalidSettings)
		}
		if used[spec.Name] {
			return s, errors.Wrapf(ErrInvalidSettings, "rotor %s is used twice", spec.Name)
		}
		used[spec.Name] = true
		s.Rotors[i] = spec.Name
	}

	if s.Positions, err = parseLetters("positions", positions); err != nil {
		return s, err
	}
	if s.Rings, err = parseLetters("rings", rings); err != nil {
		return s, err
	}

	refl, err := catalog.Reflector(strings.TrimSpace(reflector))
	if err != nil {
		return s, errors.Mark(err, ErrInvalidSettings)
	}
	s.Reflector = refl.Name

	plugged := make([]byte, bitops.SetSize(cryptors.AlphabetSize))
	for _, pair := range fields(plugboard) {
		pair = strings.ToUpper(pair)
		p := []rune(pair)
		if len(p) != 2 || !cryptors.IsLetter(p[0]) || !cryptors.IsLetter(p[1]) {
			return s, errors.Wrapf(ErrInvalidSettings, "plugboard pair %q must be two letters", pair)
		}
		a, b := uint(p[0]-cryptors.FirstLetter), uint(p[1]-cryptors.FirstLetter)
		if a == b || bitops.GetBit(plugged, a) || bitops.GetBit(plugged, b) {
			return s, errors.Wrapf(ErrInvalidSettings, "plugboard pair %q reuses a letter", pair)
		}
		bitops.SetBit(plugged, a)
		bitops.SetBit(plugged, b)
		s.Plugboard = append(s.Plugboard, pair)
	}

	return s, nil
}

// settingsFromConfig reads the settings from viper, which merges the flags,
// the environment and the config file.
func settingsFromConfig() (Settings, error) {
	return ParseSettings(
		viper.GetString(rotorsKey),
		viper.GetString(positionsKey),
		viper.GetString(ringsKey),
		viper.GetString(reflectorKey),
		viper.GetString(plugboardKey))
}

// Build creates a machine in the state the settings describe.
func (s Settings) Build() (*machine.Machine, error) {
	if len(s.Positions) != 3 || len(s.Rings) != 3 {
		return nil, errors.Wrap(ErrInvalidSettings, "positions and rings need three letters")
	}
	var rotors [3]*rotor.Rotor
	for i, name := range s.Rotors {
		r, err := catalog.NewRotor(name, rune(s.Positions[i]), rune(s.Rings[i]))
		if err != nil {
			return nil, errors.Mark(err, ErrInvalidSettings)
		}
		rotors[i] = r
	}
	refl, err := catalog.NewReflector(s.Reflector)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidSettings)
	}
	m, err := machine.New(rotors[0], rotors[1], rotors[2], refl)
	if err != nil {
		return nil, err
	}
	for _, pair := range s.Plugboard {
		p := []rune(pair)
		if err := m.SetPlugboardPair(p[0], p[1]); err != nil {
			return nil, errors.Mark(err, ErrInvalidSettings)
		}
	}
	return m, nil
}

// Headers records the settings in PEM header form.
func (s Settings) Headers() map[string]string {
	return map[string]string{
		"Rotors":    strings.Join(s.Rotors[:], " "),
		"Positions": s.Positions,
		"Rings":     s.Rings,
		"Reflector": s.Reflector,
		"Plugboard": strings.Join(s.Plugboard, " "),
	}
}

// WithHeaders returns s with every setting found in the PEM headers
// replaced by the header's value.
func (s Settings) WithHeaders(headers map[string]string) (Settings, error) {
	value := func(key, current string) string {
		if v, ok := headers[key]; ok {
			return v
		}
		return current
	}
	return ParseSettings(
		value("Rotors", strings.Join(s.Rotors[:], " ")),
		value("Positions", s.Positions),
		value("Rings", s.Rings),
		value("Reflector", s.Reflector),
		value("Plugboard", strings.Join(s.Plugboard, " ")))
}
