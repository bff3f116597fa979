// rotor
package rotor

import (
	"fmt"

	"github.com/bgallie/enigma/cryptors"
	"github.com/cockroachdb/errors"
)

// Rotor is one wheel of the machine.  The wiring tables, ring setting and
// notch are fixed when the rotor is built; only the position moves.
type Rotor struct {
	name        string
	wiring      cryptors.Table
	inverse     cryptors.Table
	notch       int
	ringSetting int
	position    int
}

// New builds a rotor from a wiring table and its inverse.  The notch is the
// position which, when reached by the rotor's own step, carries a step to the
// next rotor.  position and ringSetting are letters.
func New(name string, wiring, inverse cryptors.Table, notch, position, ringSetting rune) (*Rotor, error) {
	if !wiring.IsPermutation() {
		return nil, errors.Wrapf(cryptors.ErrInvalidWiring, "rotor %s: wiring %s is not a permutation", name, wiring)
	}
	if wiring.Inverse() != inverse {
		return nil, errors.Wrapf(cryptors.ErrInvalidWiring, "rotor %s: %s is not the inverse of %s", name, inverse, wiring)
	}
	var r Rotor
	var err error
	r.name = name
	r.wiring, r.inverse = wiring, inverse
	if r.notch, err = cryptors.Index(notch); err != nil {
		return nil, errors.Wrapf(err, "rotor %s: notch", name)
	}
	if r.ringSetting, err = cryptors.Index(ringSetting); err != nil {
		return nil, errors.Wrapf(err, "rotor %s: ring setting", name)
	}
	if r.position, err = cryptors.Index(position); err != nil {
		return nil, errors.Wrapf(err, "rotor %s: position", name)
	}
	return &r, nil
}

func (r *Rotor) Name() string {
	return r.name
}

// Position returns the current position as a letter.
func (r *Rotor) Position() rune {
	return cryptors.Letter(r.position)
}

func (r *Rotor) RingSetting() rune {
	return cryptors.Letter(r.ringSetting)
}

func (r *Rotor) Notch() rune {
	return cryptors.Letter(r.notch)
}

func (r *Rotor) Wiring() cryptors.Table {
	return r.wiring
}

// SetPosition moves the rotor to the given letter.
func (r *Rotor) SetPosition(position rune) error {
	idx, err := cryptors.Index(position)
	if err != nil {
		return err
	}
	r.position = idx
	return nil
}

// SetIndex moves the rotor to the given alphabet index.
func (r *Rotor) SetIndex(idx int) error {
	if idx < 0 || idx >= cryptors.AlphabetSize {
		return errors.Wrapf(cryptors.ErrInvalidPosition, "%d is outside 0..%d", idx, cryptors.AlphabetSize-1)
	}
	r.position = idx
	return nil
}

// Step advances the rotor by one position.  It returns true when the new
// position is the notch, meaning the next rotor must step as well.  The
// rotor itself never follows the carry on; see machine.Chain.
func (r *Rotor) Step() bool {
	r.position = cryptors.Mod(r.position + 1)
	return r.position == r.notch
}

// Apply_F maps a letter through the wiring at the current position.
func (r *Rotor) Apply_F(letter rune) (rune, error) {
	return r.apply(letter, &r.wiring, r.position-r.ringSetting)
}

// Apply_G maps a letter through the inverse wiring at the current position.
// It undoes Apply_F only while the position is unchanged and the ring setting
// is A or N.
func (r *Rotor) Apply_G(letter rune) (rune, error) {
	return r.apply(letter, &r.inverse, r.position+r.ringSetting)
}

func (r *Rotor) apply(letter rune, table *cryptors.Table, offset int) (rune, error) {
	l, err := cryptors.Index(letter)
	if err != nil {
		return letter, err
	}
	offset = cryptors.Mod(offset)
	mapped := int(table[cryptors.Mod(l+offset)])
	return cryptors.Letter(mapped - offset), nil
}

func (r *Rotor) String() string {
	return fmt.Sprintf("%s(%s notch %c ring %c position %c)",
		r.name, r.wiring, r.Notch(), r.RingSetting(), r.Position())
}
