package cryptors

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		in      rune
		want    int
		wantErr bool
	}{
		{'A', 0, false},
		{'Z', 25, false},
		{'a', 0, false},
		{'q', 16, false},
		{' ', 0, true},
		{'1', 0, true},
		{'é', 0, true},
		{'[', 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := Index(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNotALetter))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModAndLetter(t *testing.T) {
	assert.Equal(t, 0, Mod(26))
	assert.Equal(t, 25, Mod(-1))
	assert.Equal(t, 1, Mod(-51))
	assert.Equal(t, 'A', Letter(0))
	assert.Equal(t, 'Z', Letter(-1))
	assert.Equal(t, 'B', Letter(27))
	assert.Equal(t, 'Q', Upper('q'))
	assert.Equal(t, '!', Upper('!'))
}

func TestParseTable(t *testing.T) {
	tbl, err := ParseTable("EKMFLGDQVZNTOWYHXUSPAIBRCJ")
	require.NoError(t, err)
	assert.Equal(t, byte(4), tbl[0])
	assert.Equal(t, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", tbl.String())
	assert.True(t, tbl.IsPermutation())
	assert.False(t, tbl.IsInvolution())
	assert.Equal(t, []rune{'S'}, tbl.FixedPoints())

	inv := tbl.Inverse()
	for i := range tbl {
		assert.Equal(t, byte(i), inv[tbl[i]])
	}

	lower, err := ParseTable("ekmflgdqvzntowyhxuspaibrcj")
	require.NoError(t, err)
	assert.Equal(t, tbl, lower)

	_, err = ParseTable("ABC")
	assert.True(t, errors.Is(err, ErrInvalidWiring))
	_, err = ParseTable("EKMFLGDQVZNTOWYHXUSPAIBRC1")
	assert.True(t, errors.Is(err, ErrInvalidWiring))
}

func TestTableProperties(t *testing.T) {
	reflector, err := ParseTable("YRUHQSLDPXNGOKMIEBFZCWVJAT")
	require.NoError(t, err)
	assert.True(t, reflector.IsInvolution())
	assert.True(t, reflector.IsPermutation())
	assert.Empty(t, reflector.FixedPoints())

	repeated, err := ParseTable("AACDEFGHIJKLMNOPQRSTUVWXYZ")
	require.NoError(t, err)
	assert.False(t, repeated.IsPermutation())
	assert.False(t, repeated.IsInvolution())

	var identity Table
	for i := range identity {
		identity[i] = byte(i)
	}
	assert.True(t, identity.IsInvolution())
	assert.Len(t, identity.FixedPoints(), AlphabetSize)
}

type shift int

func (s shift) Apply_F(r rune) (rune, error) {
	i, err := Index(r)
	if err != nil {
		return r, err
	}
	return Letter(i + int(s)), nil
}

func (s shift) Apply_G(r rune) (rune, error) {
	return shift(-s).Apply_F(r)
}

func TestEncryptText(t *testing.T) {
	out, err := EncryptText(shift(3), "attack")
	require.NoError(t, err)
	assert.Equal(t, "DWWDFN", out)

	out, err = EncryptText(shift(3), "AB CD")
	assert.True(t, errors.Is(err, ErrNotALetter))
	assert.Equal(t, "DE", out)
}
