// bitops
package bitops

// SetSize returns the number of bytes needed to hold n bits.
func SetSize(n int) int {
	return (n + 7) >> 3
}

func SetBit(ary []byte, bit uint) []byte {
	ary[bit>>3] |= (1 << (bit & 7))
	return ary
}

func GetBit(ary []byte, bit uint) bool {
	return (ary[bit>>3]&(1<<(bit&7)) != 0)
}
