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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgallie/enigma/cryptors/machine"
	"github.com/bgallie/filters/lines"
	"github.com/bgallie/filters/pem"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const pemType = "ENIGMA Encrypted Message"

var (
	usePem    bool
	strict    bool
	save      bool
	encodeCmd *cobra.Command
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [text...]",
	Short: "Encrypt plaintext",
	Long: `Encrypt plaintext given on the command line, or read from the input file.

Letters are upper cased and everything else is dropped unless --strict is
given, in which case the first character that is not a letter stops the
machine with an error.  Rotor steps taken before the error are kept.`,
	Run: func(cmd *cobra.Command, args []string) {
		encrypt(args)
	},
}

func init() {
	encodeCmd = &cobra.Command{
		Use:        "encode [text...]",
		Short:      "Encrypt plaintext",
		Long:       `[DEPRECATED] Encrypt plaintext.`,
		Deprecated: "use \"encrypt\" instead.",
		Run:        encryptCmd.Run,
	}
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(encodeCmd)
	for _, c := range []*cobra.Command{encryptCmd, encodeCmd} {
		c.Flags().BoolVarP(&usePem, "usePem", "m", false, "wrap the ciphertext in a PEM block recording the machine settings")
		c.Flags().BoolVarP(&strict, "strict", "s", false, "fail on characters that are not letters instead of dropping them")
		c.Flags().BoolVar(&save, "save", false, "save the final rotor positions to the config file")
	}
}

// textReader returns the message to process: the command line arguments if
// there are any, otherwise the input file.
func textReader(args []string, fin *os.File) io.Reader {
	if len(args) > 0 {
		return strings.NewReader(strings.Join(args, " "))
	}
	if term.IsTerminal(int(fin.Fd())) {
		fmt.Fprintln(os.Stderr, "Enter the text, followed by end-of-file:")
	}
	return fin
}

func logMachine(msg string, settings Settings, m *machine.Machine) {
	logger.Infow(msg,
		"rotors", strings.Join(settings.Rotors[:], " "),
		"rings", settings.Rings,
		"reflector", settings.Reflector,
		"plugboard", m.Plugboard().String(),
		"positions", m.Positions())
}

// encryptStream enciphers src onto dst with a machine built from settings.
// The ciphertext is either PEM armored, with the settings in the headers, or
// split into groups of group letters and lines.  The machine is returned so
// its final positions can be recorded.
func encryptStream(settings Settings, src io.Reader, dst io.Writer, armor bool, group int) (*machine.Machine, error) {
	m, err := settings.Build()
	if err != nil {
		return nil, err
	}
	logMachine("encrypting", settings, m)

	left, right := machine.CreateEncryptMachine(m)
	encOut := cipherHelper(src, left, right, strict)

	if armor {
		var blck pem.Block
		blck.Type = pemType
		blck.Headers = settings.Headers()
		_, err = io.Copy(dst, pem.ToPem(encOut, blck))
	} else {
		_, err = io.Copy(dst, lines.SplitToLines(groupHelper(encOut, group)))
	}
	wg.Wait()
	return m, err
}

func encrypt(args []string) {
	settings, err := settingsFromConfig()
	cobra.CheckErr(err)

	fin, fout := getInputAndOutputFiles(true)
	defer fout.Close()
	m, err := encryptStream(settings, textReader(args, fin), fout, usePem, viper.GetInt(groupKey))
	checkError(err)
	if term.IsTerminal(int(fout.Fd())) {
		fmt.Fprintln(fout)
	}

	logger.Infow("encrypted", "positions", m.Positions())
	if save {
		viper.Set(positionsKey, m.Positions())
		cobra.CheckErr(writeConfig())
	}
}
