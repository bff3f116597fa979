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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [ciphertext...]",
	Short: "Decrypt ciphertext",
	Long: `Decrypt ciphertext given on the command line, or read from the input file.

Input wrapped in a PEM block by "encrypt --usePem" carries the machine
settings in its headers; they override the configured settings.  Group
spacing and line breaks are ignored.`,
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:        "decode [ciphertext...]",
	Short:      "Decrypt ciphertext",
	Long:       `[DEPRECATED] Decrypt ciphertext.`,
	Deprecated: "use \"decrypt\" instead.",
	Run: func(cmd *cobra.Command, args []string) {
		decrypt(args)
	},
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(decodeCmd)
}

// cipherSource detects a PEM wrapped message, returning its body and the
// settings recorded in its headers.  Anything else has its lines joined.
func cipherSource(rdr io.Reader, settings Settings) (io.Reader, Settings, error) {
	bRdr := bufio.NewReader(rdr)
	b, err := bRdr.Peek(5)
	if err != nil && err != io.EOF {
		return nil, settings, err
	}
	if string(b) == "-----" {
		pRdr, blck := pem.FromPem(bRdr)
		settings, err = settings.WithHeaders(blck.Headers)
		return pRdr, settings, err
	}
	return lines.CombineLines(bRdr), settings, nil
}

// decryptStream deciphers src onto dst.  Settings found in PEM headers take
// the place of the given ones.
func decryptStream(settings Settings, src io.Reader, dst io.Writer) (*machine.Machine, error) {
	src, settings, err := cipherSource(src, settings)
	if err != nil {
		return nil, err
	}
	m, err := settings.Build()
	if err != nil {
		return nil, err
	}
	logMachine("decrypting", settings, m)

	left, right := machine.CreateEncryptMachine(m)
	_, err = io.Copy(dst, cipherHelper(src, left, right, false))
	wg.Wait()
	return m, err
}

func decrypt(args []string) {
	settings, err := settingsFromConfig()
	cobra.CheckErr(err)

	fin, fout := getInputAndOutputFiles(false)
	defer fout.Close()
	var src io.Reader = fin
	if len(args) > 0 {
		src = strings.NewReader(strings.Join(args, ""))
	} else if term.IsTerminal(int(fin.Fd())) {
		fmt.Fprintln(os.Stderr, "Enter the ciphertext, followed by end-of-file:")
	}

	m, err := decryptStream(settings, src, fout)
	checkError(err)
	if term.IsTerminal(int(fout.Fd())) {
		fmt.Fprintln(fout)
	}
	logger.Infow("decrypted", "positions", m.Positions())
}
