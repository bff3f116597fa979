package cmd

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	got, err := ParseSettings("iii, ii i", " gii", "aNa", "b", "hg,id  zu")
	require.NoError(t, err)
	want := Settings{
		Rotors:    [3]string{"III", "II", "I"},
		Positions: "GII",
		Rings:     "ANA",
		Reflector: "B",
		Plugboard: []string{"HG", "ID", "ZU"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSettings() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name                                           string
		rotors, positions, rings, reflector, plugboard string
		wantKind                                       error
	}{
		{"two rotors", "I II", "AAA", "AAA", "B", "", ErrInvalidSettings},
		{"unknown rotor", "I II IX", "AAA", "AAA", "B", "", cryptors.ErrUnknownRotor},
		{"repeated rotor", "I II I", "AAA", "AAA", "B", "", ErrInvalidSettings},
		{"short positions", "I II III", "AA", "AAA", "B", "", ErrInvalidSettings},
		{"bad positions", "I II III", "A1A", "AAA", "B", "", ErrInvalidSettings},
		{"bad rings", "I II III", "AAA", "AA ", "B", "", ErrInvalidSettings},
		{"unknown reflector", "I II III", "AAA", "AAA", "Q", "", cryptors.ErrUnknownReflector},
		{"long pair", "I II III", "AAA", "AAA", "B", "ABC", ErrInvalidSettings},
		{"non letter pair", "I II III", "AAA", "AAA", "B", "A-", ErrInvalidSettings},
		{"self pair", "I II III", "AAA", "AAA", "B", "AA", ErrInvalidSettings},
		{"reused letter", "I II III", "AAA", "AAA", "B", "AB CA", ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings(tt.rotors, tt.positions, tt.rings, tt.reflector, tt.plugboard)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantKind), "%v", err)
			assert.True(t, errors.Is(err, ErrInvalidSettings), "%v", err)
		})
	}
}

func TestBuild(t *testing.T) {
	s, err := ParseSettings("III II I", "AAA", "AAA", "B", "")
	require.NoError(t, err)
	m, err := s.Build()
	require.NoError(t, err)
	out, err := m.EncryptText("HelloWorld")
	require.NoError(t, err)
	assert.Equal(t, "MFNCZBBFZM", out)

	s, err = ParseSettings("II I IV", "GII", "AAA", "A", "HG ID ZU BX FW AM QV KN PE")
	require.NoError(t, err)
	m, err = s.Build()
	require.NoError(t, err)
	assert.Equal(t, 9, m.Plugboard().Len())
	out, err = m.EncryptText("internal")
	require.NoError(t, err)
	assert.Equal(t, "SEHFLHJE", out)

	_, err = Settings{}.Build()
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}

func TestHeadersRoundTrip(t *testing.T) {
	s, err := ParseSettings("II I IV", "GII", "ANA", "A", "HG ID")
	require.NoError(t, err)
	h := s.Headers()
	assert.Equal(t, "II I IV", h["Rotors"])
	assert.Equal(t, "HG ID", h["Plugboard"])

	other, err := ParseSettings("III II I", "AAA", "AAA", "B", "")
	require.NoError(t, err)
	restored, err := other.WithHeaders(h)
	require.NoError(t, err)
	if diff := cmp.Diff(s, restored); diff != "" {
		t.Errorf("WithHeaders() mismatch (-want +got):\n%s", diff)
	}

	partial, err := other.WithHeaders(map[string]string{"Positions": "XYZ"})
	require.NoError(t, err)
	assert.Equal(t, "XYZ", partial.Positions)
	assert.Equal(t, other.Rotors, partial.Rotors)

	_, err = other.WithHeaders(map[string]string{"Reflector": "Z"})
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}
