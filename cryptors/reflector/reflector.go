// reflector
package reflector

import (
	"github.com/bgallie/enigma/cryptors"
	"github.com/cockroachdb/errors"
)

// Reflector sends the signal back through the rotors.  Its wiring is an
// involution, which is what makes the machine its own inverse.
type Reflector struct {
	name   string
	wiring cryptors.Table
}

func New(name string, wiring cryptors.Table) (*Reflector, error) {
	if !wiring.IsInvolution() {
		return nil, errors.Wrapf(cryptors.ErrInvalidWiring, "reflector %s: %s is not an involution", name, wiring)
	}
	return &Reflector{name: name, wiring: wiring}, nil
}

func (r *Reflector) Name() string {
	return r.name
}

func (r *Reflector) Wiring() cryptors.Table {
	return r.wiring
}

// Apply reflects a letter.  Anything that is not a letter comes back
// unchanged.
func (r *Reflector) Apply(letter rune) rune {
	idx, err := cryptors.Index(letter)
	if err != nil {
		return letter
	}
	return cryptors.Letter(int(r.wiring[idx]))
}

func (r *Reflector) Apply_F(letter rune) (rune, error) {
	return r.Apply(letter), nil
}

func (r *Reflector) Apply_G(letter rune) (rune, error) {
	return r.Apply(letter), nil
}

func (r *Reflector) String() string {
	return r.name + "(" + r.wiring.String() + ")"
}
