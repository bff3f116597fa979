package machine

import "github.com/bgallie/enigma/cryptors"

// Block is the unit of text passed through an encryption pipeline.  A block
// with no text shuts the pipeline down.
type Block struct {
	Text string
	Err  error
}

// EncryptMachine starts a goroutine that enciphers every block received on
// left with c and sends the result on the returned channel.  The goroutine
// owns c until it exits, which happens after it forwards an empty block,
// after left is closed, or after it reports an error.  A block carrying an
// error also carries the text enciphered before the failure.  Once an error
// has been reported the caller must stop sending.
func EncryptMachine(c cryptors.Crypter, left chan Block) chan Block {
	right := make(chan Block)
	go func(c cryptors.Crypter, left chan Block, right chan Block) {
		defer close(right)
		for inp := range left {
			if len(inp.Text) == 0 {
				right <- inp
				break
			}

			out, err := cryptors.EncryptText(c, inp.Text)
			right <- Block{Text: out, Err: err}
			if err != nil {
				break
			}
		}
	}(c, left, right)

	return right
}

// CreateEncryptMachine returns both ends of a pipeline driving c.
func CreateEncryptMachine(c cryptors.Crypter) (left chan Block, right chan Block) {
	if c == nil {
		panic("you must give a machine to drive!")
	}
	left = make(chan Block)
	right = EncryptMachine(c, left)
	return
}
