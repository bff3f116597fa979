package rotor

import (
	"testing"

	"github.com/bgallie/enigma/cryptors"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotorI(t *testing.T, position, ringSetting rune) *Rotor {
	t.Helper()
	wiring, err := cryptors.ParseTable("EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	require.NoError(t, err)
	r, err := New("I", wiring, wiring.Inverse(), 'R', position, ringSetting)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	r := rotorI(t, 'c', 'b')
	assert.Equal(t, "I", r.Name())
	assert.Equal(t, 'C', r.Position())
	assert.Equal(t, 'B', r.RingSetting())
	assert.Equal(t, 'R', r.Notch())
	assert.Equal(t, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", r.Wiring().String())
}

func TestNewRejectsBadInput(t *testing.T) {
	wiring, err := cryptors.ParseTable("EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	require.NoError(t, err)

	_, err = New("I", wiring, wiring, 'R', 'A', 'A')
	assert.True(t, errors.Is(err, cryptors.ErrInvalidWiring), "inverse does not match")

	repeated, err := cryptors.ParseTable("AACDEFGHIJKLMNOPQRSTUVWXYZ")
	require.NoError(t, err)
	_, err = New("bad", repeated, repeated.Inverse(), 'R', 'A', 'A')
	assert.True(t, errors.Is(err, cryptors.ErrInvalidWiring), "not a permutation")

	_, err = New("I", wiring, wiring.Inverse(), 'R', '1', 'A')
	assert.True(t, errors.Is(err, cryptors.ErrNotALetter))
	_, err = New("I", wiring, wiring.Inverse(), 'R', 'A', ' ')
	assert.True(t, errors.Is(err, cryptors.ErrNotALetter))
	_, err = New("I", wiring, wiring.Inverse(), '?', 'A', 'A')
	assert.True(t, errors.Is(err, cryptors.ErrNotALetter))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		position    rune
		ringSetting rune
		in          rune
		forward     rune
		back        rune
	}{
		{"home", 'A', 'A', 'A', 'E', 'A'},
		{"lower case", 'A', 'A', 'a', 'E', 'A'},
		{"stepped once", 'B', 'A', 'A', 'J', 'A'},
		{"ring B", 'A', 'B', 'A', 'K', 'D'},
		{"ring N", 'A', 'N', 'A', 'J', 'A'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rotorI(t, tt.position, tt.ringSetting)
			f, err := r.Apply_F(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.forward, f)
			g, err := r.Apply_G(f)
			require.NoError(t, err)
			assert.Equal(t, tt.back, g)
		})
	}
}

func TestApplyInvertsAtFixedPosition(t *testing.T) {
	for _, ring := range []rune{'A', 'N'} {
		r := rotorI(t, 'A', ring)
		for pos := 0; pos < cryptors.AlphabetSize; pos++ {
			require.NoError(t, r.SetIndex(pos))
			for i := 0; i < cryptors.AlphabetSize; i++ {
				f, err := r.Apply_F(cryptors.Letter(i))
				require.NoError(t, err)
				g, err := r.Apply_G(f)
				require.NoError(t, err)
				assert.Equal(t, cryptors.Letter(i), g, "ring %c position %d", ring, pos)
			}
		}
	}
}

func TestApplyRejectsNonLetters(t *testing.T) {
	r := rotorI(t, 'A', 'A')
	_, err := r.Apply_F(' ')
	assert.True(t, errors.Is(err, cryptors.ErrNotALetter))
	_, err = r.Apply_G('7')
	assert.True(t, errors.Is(err, cryptors.ErrNotALetter))
	assert.Equal(t, 'A', r.Position())
}

func TestStep(t *testing.T) {
	r := rotorI(t, 'P', 'A')
	assert.False(t, r.Step())
	assert.Equal(t, 'Q', r.Position())
	assert.True(t, r.Step(), "landing on the notch carries")
	assert.Equal(t, 'R', r.Position())
	assert.False(t, r.Step())

	require.NoError(t, r.SetPosition('Z'))
	assert.False(t, r.Step())
	assert.Equal(t, 'A', r.Position())
}

func TestStepFullCycleCarriesOnce(t *testing.T) {
	r := rotorI(t, 'A', 'A')
	carries := 0
	for i := 0; i < cryptors.AlphabetSize; i++ {
		if r.Step() {
			carries++
		}
	}
	assert.Equal(t, 1, carries)
	assert.Equal(t, 'A', r.Position())
}

func TestSetPosition(t *testing.T) {
	r := rotorI(t, 'A', 'A')
	require.NoError(t, r.SetPosition('k'))
	assert.Equal(t, 'K', r.Position())

	err := r.SetPosition('#')
	assert.True(t, errors.Is(err, cryptors.ErrNotALetter))
	assert.Equal(t, 'K', r.Position())

	require.NoError(t, r.SetIndex(25))
	assert.Equal(t, 'Z', r.Position())
	assert.True(t, errors.Is(r.SetIndex(26), cryptors.ErrInvalidPosition))
	assert.True(t, errors.Is(r.SetIndex(-1), cryptors.ErrInvalidPosition))
	assert.Equal(t, 'Z', r.Position())
}

func TestString(t *testing.T) {
	r := rotorI(t, 'C', 'B')
	assert.Equal(t, "I(EKMFLGDQVZNTOWYHXUSPAIBRCJ notch R ring B position C)", r.String())
}
