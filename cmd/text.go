/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bgallie/enigma/cryptors"
	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/cockroachdb/errors"
)

// blockSize is roughly how much text, in bytes, is sent through the
// machine at a time.
const blockSize = 2048

// prepare upper cases the letters of s.  Anything else is dropped unless
// strict is set, in which case it is kept so that the machine rejects it.
func prepare(s string, strict bool) string {
	return strings.Map(func(r rune) rune {
		if cryptors.IsLetter(r) {
			return cryptors.Upper(r)
		}
		if strict {
			return r
		}
		return -1
	}, s)
}

// cipherHelper feeds the text read from rdr through the machine pipeline and
// returns a reader for the result.  A machine error closes the reader with
// that error, annotated with the offset of the failing character counted in
// runes from the start of the prepared message.
func cipherHelper(rdr io.Reader, left, right chan machine.Block, strict bool) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)

	go func() {
		defer wg.Done()
		bRdr := bufio.NewReader(rdr)
		var blk strings.Builder
		var err error
		sent := 0

		for err != io.EOF {
			blk.Reset()
			for blk.Len() < blockSize {
				var r rune
				if r, _, err = bRdr.ReadRune(); err != nil {
					break
				}
				blk.WriteRune(r)
			}
			if err != nil && err != io.EOF {
				rWrtr.CloseWithError(err)
				return
			}

			text := prepare(blk.String(), strict)
			if len(text) == 0 {
				continue
			}
			left <- machine.Block{Text: text}
			out := <-right
			if out.Err != nil {
				rWrtr.CloseWithError(errors.Wrapf(out.Err, "message offset %d", sent+utf8.RuneCountInString(out.Text)))
				return
			}
			sent += utf8.RuneCountInString(text)
			if _, werr := rWrtr.Write([]byte(out.Text)); werr != nil {
				// The reader went away; shut the machine down.
				left <- machine.Block{}
				<-right
				return
			}
		}

		// Shut down the machine by sending it an empty block.
		left <- machine.Block{}
		<-right
		rWrtr.Close()
	}()

	return rRdr
}

// groupHelper copies the letters read from rdr, inserting a space after
// every size letters.  A size of zero copies them unchanged.
func groupHelper(rdr io.Reader, size int) *io.PipeReader {
	rRdr, rWrtr := io.Pipe()
	wg.Add(1)

	go func() {
		defer wg.Done()
		if size <= 0 {
			_, err := io.Copy(rWrtr, rdr)
			rWrtr.CloseWithError(err)
			return
		}

		bRdr := bufio.NewReader(rdr)
		bWrtr := bufio.NewWriter(rWrtr)
		count := 0
		for {
			b, err := bRdr.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = bWrtr.Flush()
				}
				rWrtr.CloseWithError(err)
				return
			}
			if count > 0 && count%size == 0 {
				bWrtr.WriteByte(' ')
			}
			bWrtr.WriteByte(b)
			count++
		}
	}()

	return rRdr
}
