package machine

import (
	"github.com/bgallie/enigma/cryptors/rotor"
)

// Slot names a place in the rotor chain.
type Slot int

const (
	Left Slot = iota
	Middle
	Right
	numberOfSlots
	noSlot Slot = -1
)

func (s Slot) String() string {
	switch s {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	}
	return "invalid"
}

func (s Slot) valid() bool {
	return s >= Left && s < numberOfSlots
}

// Chain holds the three rotors.  A carry from a rotor is passed to the slot
// recorded in next, so replacing a rotor is a single array write and the
// links never have to be rebuilt.
type Chain struct {
	rotors [numberOfSlots]*rotor.Rotor
	next   [numberOfSlots]Slot
}

func newChain(left, middle, right *rotor.Rotor) Chain {
	var c Chain
	c.rotors[Left], c.rotors[Middle], c.rotors[Right] = left, middle, right
	c.next[Right] = Middle
	c.next[Middle] = Left
	c.next[Left] = noSlot
	return c
}

// Rotor returns the rotor installed in slot s.
func (c *Chain) Rotor(s Slot) *rotor.Rotor {
	return c.rotors[s]
}

// Next returns the slot that a carry out of s steps, if any.
func (c *Chain) Next(s Slot) (Slot, bool) {
	n := c.next[s]
	return n, n != noSlot
}

func (c *Chain) set(s Slot, r *rotor.Rotor) {
	c.rotors[s] = r
}

// Step advances the rotor in slot s, carrying into the next slot each time
// a rotor lands on its notch.
func (c *Chain) Step(s Slot) {
	for c.rotors[s].Step() {
		n, ok := c.Next(s)
		if !ok {
			return
		}
		s = n
	}
}
