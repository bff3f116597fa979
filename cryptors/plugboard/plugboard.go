// plugboard
package plugboard

import (
	"sort"
	"strings"

	"github.com/bgallie/enigma/cryptors"
	"github.com/cockroachdb/errors"
)

// Plugboard swaps pairs of letters before and after the rotors.  A letter
// with no partner maps to itself.
type Plugboard struct {
	plugs cryptors.Table // plugs[a] == b implies plugs[b] == a
}

// New creates a plugboard with no pairs connected.
func New() *Plugboard {
	var p Plugboard
	p.Reset()
	return &p
}

// Reset removes every pair.
func (p *Plugboard) Reset() {
	for i := range p.plugs {
		p.plugs[i] = byte(i)
	}
}

// SetPair connects a and b, first disconnecting any partner either of them
// already had.  Nothing changes if either is not a letter.
func (p *Plugboard) SetPair(a, b rune) error {
	x, err := cryptors.Index(a)
	if err != nil {
		return errors.Wrap(err, "plugboard")
	}
	y, err := cryptors.Index(b)
	if err != nil {
		return errors.Wrap(err, "plugboard")
	}
	p.unplug(x)
	p.unplug(y)
	p.plugs[x], p.plugs[y] = byte(y), byte(x)
	return nil
}

func (p *Plugboard) unplug(x int) {
	y := p.plugs[x]
	p.plugs[y] = y
	p.plugs[x] = byte(x)
}

// Apply returns the partner of r, or r itself when r has no partner or is
// not a letter.
func (p *Plugboard) Apply(r rune) rune {
	idx, err := cryptors.Index(r)
	if err != nil {
		return r
	}
	return cryptors.Letter(int(p.plugs[idx]))
}

func (p *Plugboard) Apply_F(r rune) (rune, error) {
	return p.Apply(r), nil
}

func (p *Plugboard) Apply_G(r rune) (rune, error) {
	return p.Apply(r), nil
}

// Pairs returns the connected pairs, each written lowest letter first, in
// alphabetical order.
func (p *Plugboard) Pairs() []string {
	pairs := make([]string, 0, cryptors.MaximumPlugPairs)
	for i, v := range p.plugs {
		if int(v) > i {
			pairs = append(pairs, string([]rune{cryptors.Letter(i), cryptors.Letter(int(v))}))
		}
	}
	sort.Strings(pairs)
	return pairs
}

// Len returns the number of connected pairs.
func (p *Plugboard) Len() int {
	return len(p.Pairs())
}

// Table returns a copy of the current swap table.
func (p *Plugboard) Table() cryptors.Table {
	return p.plugs
}

func (p *Plugboard) String() string {
	return strings.Join(p.Pairs(), " ")
}
