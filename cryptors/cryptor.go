// cryptor
package cryptors

import (
	"strings"

	"github.com/bgallie/enigma/cryptors/bitops"
	"github.com/cockroachdb/errors"
)

const (
	AlphabetSize = 26
	FirstLetter  = 'A'
	// MaximumPlugPairs is the most disjoint pairs a plugboard can hold.
	MaximumPlugPairs = AlphabetSize / 2
)

var (
	ErrNotALetter       = errors.New("not a letter")
	ErrInvalidPosition  = errors.New("invalid rotor position")
	ErrInvalidWiring    = errors.New("invalid wiring table")
	ErrUnknownRotor     = errors.New("unknown rotor")
	ErrUnknownReflector = errors.New("unknown reflector")
)

// Crypter is a single substitution stage of the machine.  Apply_F is the
// mapping used on the way into the reflector and Apply_G the mapping used on
// the way back out.  Stages that are their own inverse (the reflector and the
// plugboard) return the same result from both.
type Crypter interface {
	Apply_F(rune) (rune, error)
	Apply_G(rune) (rune, error)
}

// Mod returns n modulo the alphabet size, never negative.
func Mod(n int) int {
	n %= AlphabetSize
	if n < 0 {
		n += AlphabetSize
	}
	return n
}

// Index returns the 0 based alphabet index of r.  Lower case letters are
// accepted.
func Index(r rune) (int, error) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - FirstLetter), nil
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), nil
	}
	return 0, errors.Wrapf(ErrNotALetter, "%q", r)
}

// IsLetter reports whether r belongs to the alphabet, ignoring case.
func IsLetter(r rune) bool {
	_, err := Index(r)
	return err == nil
}

// Letter returns the upper case letter for index i (taken modulo the
// alphabet size).
func Letter(i int) rune {
	return rune(FirstLetter + Mod(i))
}

// Upper upper cases r if it is a lower case letter, otherwise r is returned
// unchanged.
func Upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + FirstLetter
	}
	return r
}

// Table maps an alphabet index to an alphabet index.
type Table [AlphabetSize]byte

// ParseTable builds a Table from its letter form, where the letter at offset
// i is the image of the i'th letter, e.g. "EKMFLGDQVZNTOWYHXUSPAIBRCJ".
func ParseTable(s string) (Table, error) {
	var t Table
	if len(s) != AlphabetSize {
		return t, errors.Wrapf(ErrInvalidWiring, "%q has %d letters, need %d", s, len(s), AlphabetSize)
	}
	for i, r := range s {
		idx, err := Index(r)
		if err != nil {
			return t, errors.Wrapf(ErrInvalidWiring, "%q: %v", s, err)
		}
		t[i] = byte(idx)
	}
	return t, nil
}

// Inverse returns the table that undoes t.  It is only meaningful when t is a
// permutation.
func (t Table) Inverse() Table {
	var inv Table
	for i, v := range t {
		inv[v] = byte(i)
	}
	return inv
}

// IsPermutation reports whether every index appears exactly once in t.
func (t Table) IsPermutation() bool {
	seen := make([]byte, bitops.SetSize(AlphabetSize))
	for _, v := range t {
		if int(v) >= AlphabetSize || bitops.GetBit(seen, uint(v)) {
			return false
		}
		bitops.SetBit(seen, uint(v))
	}
	return true
}

// IsInvolution reports whether t(t(x)) == x for every x.
func (t Table) IsInvolution() bool {
	for i, v := range t {
		if int(v) >= AlphabetSize || int(t[v]) != i {
			return false
		}
	}
	return true
}

// FixedPoints returns the letters that t maps to themselves.
func (t Table) FixedPoints() []rune {
	var fp []rune
	for i, v := range t {
		if int(v) == i {
			fp = append(fp, Letter(i))
		}
	}
	return fp
}

func (t Table) String() string {
	var output strings.Builder
	for _, v := range t {
		output.WriteRune(Letter(int(v)))
	}
	return output.String()
}

// EncryptText runs each letter of text through c's forward mapping.  It stops
// at the first failure.
func EncryptText(c Crypter, text string) (string, error) {
	var output strings.Builder
	for _, r := range text {
		o, err := c.Apply_F(r)
		if err != nil {
			return output.String(), err
		}
		output.WriteRune(o)
	}
	return output.String(), nil
}
