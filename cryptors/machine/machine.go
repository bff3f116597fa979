// Package machine wires three rotors, a reflector and a plugboard into a
// rotor cipher machine.
//
// Each letter steps the right rotor before it is enciphered, so a Machine
// carries state from one call to the next.  Enciphering is its own inverse:
// a second machine set up identically turns the ciphertext back into the
// plaintext.  A Machine is not safe for concurrent use.
package machine

import (
	"strings"
	"unicode/utf8"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/plugboard"
	"github.com/bgallie/enigma/cryptors/reflector"
	"github.com/bgallie/enigma/cryptors/rotor"
	"github.com/cockroachdb/errors"
)

var (
	errInvalidSlot = errors.New("invalid rotor slot")
	// ErrMissingPart is returned when a rotor or reflector is nil.
	ErrMissingPart = errors.New("missing machine part")
)

type Machine struct {
	chain     Chain
	reflector *reflector.Reflector
	plugboard *plugboard.Plugboard
}

// New builds a machine with an empty plugboard.
func New(left, middle, right *rotor.Rotor, refl *reflector.Reflector) (*Machine, error) {
	for s, r := range [...]*rotor.Rotor{left, middle, right} {
		if r == nil {
			return nil, errors.Wrapf(ErrMissingPart, "%s rotor", Slot(s))
		}
	}
	if refl == nil {
		return nil, errors.Wrap(ErrMissingPart, "reflector")
	}
	return &Machine{
		chain:     newChain(left, middle, right),
		reflector: refl,
		plugboard: plugboard.New(),
	}, nil
}

// forward lists the stages a letter passes through on its way into the
// reflector, the reflector included.
func (m *Machine) forward() [5]cryptors.Crypter {
	return [...]cryptors.Crypter{
		m.plugboard,
		m.chain.Rotor(Right),
		m.chain.Rotor(Middle),
		m.chain.Rotor(Left),
		m.reflector,
	}
}

// inverse lists the stages on the way back out of the reflector.
func (m *Machine) inverse() [4]cryptors.Crypter {
	return [...]cryptors.Crypter{
		m.chain.Rotor(Left),
		m.chain.Rotor(Middle),
		m.chain.Rotor(Right),
		m.plugboard,
	}
}

// EncryptSymbol enciphers one letter.  The right rotor steps before the
// letter is checked, so a call that fails with cryptors.ErrNotALetter still
// advances the rotors.
func (m *Machine) EncryptSymbol(symbol rune) (rune, error) {
	m.chain.Step(Right)

	c := cryptors.Upper(symbol)
	var err error
	for _, stage := range m.forward() {
		if c, err = stage.Apply_F(c); err != nil {
			return 0, err
		}
	}
	for _, stage := range m.inverse() {
		if c, err = stage.Apply_G(c); err != nil {
			return 0, err
		}
	}
	return c, nil
}

// EncryptText enciphers text one letter at a time.  It stops at the first
// symbol that is not a letter; the rotor steps taken up to and including that
// symbol are kept.  The error gives the offset of that symbol in runes.
func (m *Machine) EncryptText(text string) (string, error) {
	out, err := cryptors.EncryptText(m, text)
	if err != nil {
		return "", errors.Wrapf(err, "offset %d", utf8.RuneCountInString(out))
	}
	return out, nil
}

func (m *Machine) Apply_F(r rune) (rune, error) {
	return m.EncryptSymbol(r)
}

func (m *Machine) Apply_G(r rune) (rune, error) {
	return m.EncryptSymbol(r)
}

// SetRotor installs r in slot s.  The carry links belong to the slots, so the
// rotor on either side keeps stepping the right neighbour.
func (m *Machine) SetRotor(s Slot, r *rotor.Rotor) error {
	if !s.valid() {
		return errors.Wrapf(errInvalidSlot, "%d", s)
	}
	if r == nil {
		return errors.Wrapf(ErrMissingPart, "%s rotor", s)
	}
	m.chain.set(s, r)
	return nil
}

func (m *Machine) SetLeftRotor(r *rotor.Rotor) error {
	return m.SetRotor(Left, r)
}

func (m *Machine) SetMiddleRotor(r *rotor.Rotor) error {
	return m.SetRotor(Middle, r)
}

func (m *Machine) SetRightRotor(r *rotor.Rotor) error {
	return m.SetRotor(Right, r)
}

func (m *Machine) SetReflector(refl *reflector.Reflector) error {
	if refl == nil {
		return errors.Wrap(ErrMissingPart, "reflector")
	}
	m.reflector = refl
	return nil
}

// SetPlugboardPair connects a and b on the plugboard.  The plugboard is left
// untouched when either is not a letter.
func (m *Machine) SetPlugboardPair(a, b rune) error {
	return m.plugboard.SetPair(a, b)
}

// Rotor returns the rotor in slot s, or nil for an unknown slot.
func (m *Machine) Rotor(s Slot) *rotor.Rotor {
	if !s.valid() {
		return nil
	}
	return m.chain.Rotor(s)
}

func (m *Machine) Chain() *Chain {
	return &m.chain
}

func (m *Machine) Reflector() *reflector.Reflector {
	return m.reflector
}

func (m *Machine) Plugboard() *plugboard.Plugboard {
	return m.plugboard
}

// RotorPosition returns the position of the rotor in slot s as a letter.
func (m *Machine) RotorPosition(s Slot) (rune, error) {
	if !s.valid() {
		return 0, errors.Wrapf(errInvalidSlot, "%d", s)
	}
	return m.chain.Rotor(s).Position(), nil
}

// SetRotorPosition moves the rotor in slot s to a letter.
func (m *Machine) SetRotorPosition(s Slot, position rune) error {
	if !s.valid() {
		return errors.Wrapf(errInvalidSlot, "%d", s)
	}
	return errors.Wrapf(m.chain.Rotor(s).SetPosition(position), "%s rotor", s)
}

// SetRotorIndex moves the rotor in slot s to an alphabet index.
func (m *Machine) SetRotorIndex(s Slot, idx int) error {
	if !s.valid() {
		return errors.Wrapf(errInvalidSlot, "%d", s)
	}
	return errors.Wrapf(m.chain.Rotor(s).SetIndex(idx), "%s rotor", s)
}

// Positions returns the rotor positions, left to right, e.g. "AQV".
func (m *Machine) Positions() string {
	p := make([]rune, numberOfSlots)
	for s := Left; s < numberOfSlots; s++ {
		p[s] = m.chain.Rotor(s).Position()
	}
	return string(p)
}

// SetPositions sets all three rotors from a string such as "AQV".  No rotor
// moves unless every position is valid.
func (m *Machine) SetPositions(positions string) error {
	p := []rune(positions)
	if len(p) != int(numberOfSlots) {
		return errors.Wrapf(cryptors.ErrInvalidPosition, "%q needs %d letters", positions, numberOfSlots)
	}
	var idx [numberOfSlots]int
	for s := Left; s < numberOfSlots; s++ {
		i, err := cryptors.Index(p[s])
		if err != nil {
			return errors.Wrapf(err, "position %q", p[s])
		}
		idx[s] = i
	}
	for s := Left; s < numberOfSlots; s++ {
		if err := m.chain.Rotor(s).SetIndex(idx[s]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) String() string {
	var output strings.Builder
	for s := Left; s < numberOfSlots; s++ {
		output.WriteString(s.String())
		output.WriteString(": ")
		output.WriteString(m.chain.Rotor(s).String())
		output.WriteString("\n")
	}
	output.WriteString("reflector: " + m.reflector.String() + "\n")
	output.WriteString("plugboard: " + m.plugboard.String() + "\n")
	return output.String()
}
