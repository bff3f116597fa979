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
	"path/filepath"
	"strings"
	"sync"

	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	logger         = zap.NewNop().Sugar()
	wg             sync.WaitGroup
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	configName   = ".enigma"
	cipherSuffix = ".enigma"
	envPrefix    = "ENIGMA"
	groupKey     = "group"
	verboseKey   = "verbose"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "enigma",
	Short: "A three rotor cipher machine",
	Long: `enigma encrypts and decrypts text with a simulated three rotor cipher machine.

The machine is described by its rotors (left to right), their starting
positions and ring settings, the reflector and the plugboard pairs.  These
come from the command line, from ENIGMA_* environment variables or from the
config file.  Decrypting is the same operation as encrypting, using the same
starting settings.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)
	rootCmd.Version = versionString()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	pf.StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encrypt/decrypt.")
	pf.StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file to write the result to.")
	pf.StringP(rotorsKey, "r", "III II I", "rotors, left to right ("+strings.Join(catalog.RotorNames(), ", ")+")")
	pf.StringP(positionsKey, "p", "AAA", "starting rotor positions, left to right")
	pf.StringP(ringsKey, "R", "AAA", "ring settings, left to right")
	pf.StringP(reflectorKey, "u", "B", "reflector ("+strings.Join(catalog.ReflectorNames(), ", ")+")")
	pf.StringP(plugboardKey, "b", "", `plugboard pairs, e.g. "HG ID ZU"`)
	pf.IntP(groupKey, "g", 5, "letters per cipher group (0 for no grouping)")
	pf.BoolP(verboseKey, "v", false, "log machine settings to stderr")
	for _, key := range []string{rotorsKey, positionsKey, ringsKey, reflectorKey, plugboardKey, groupKey, verboseKey} {
		cobra.CheckErr(viper.BindPFlag(key, pf.Lookup(key)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".enigma" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// A missing config file is fine; the flag defaults describe a machine.
	_ = viper.ReadInConfig()
}

func initLogger() {
	if !viper.GetBool(verboseKey) {
		return
	}
	zapLogger, err := zap.NewDevelopmentConfig().Build()
	cobra.CheckErr(err)
	logger = zapLogger.Sugar()
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Infow("using config file", "file", used)
	}
}

// writeConfig saves the current settings, creating $HOME/.enigma.yaml if no
// config file was read.
func writeConfig() error {
	if viper.ConfigFileUsed() != "" {
		return viper.WriteConfig()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(home, configName+".yaml"))
}

/*
	getInputAndOutputFiles will return the input and output files to use while
	encrypting/decrypting data.  If input and/or output files names were given,
	then those files will be opened.  Otherwise stdin and stdout are used.
*/
func getInputAndOutputFiles(encode bool) (*os.File, *os.File) {
	var fin *os.File
	var err error

	if len(inputFileName) > 0 && inputFileName != "-" {
		fin, err = os.Open(inputFileName)
		cobra.CheckErr(err)
	} else {
		fin = os.Stdin
	}

	var fout *os.File

	if len(outputFileName) > 0 {
		if outputFileName == "-" {
			fout = os.Stdout
		} else {
			fout, err = os.Create(outputFileName)
			cobra.CheckErr(err)
		}
	} else if len(inputFileName) == 0 || inputFileName == "-" {
		fout = os.Stdout
	} else if encode {
		outputFileName = inputFileName + cipherSuffix
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else if strings.HasSuffix(inputFileName, cipherSuffix) {
		outputFileName = strings.TrimSuffix(inputFileName, cipherSuffix)
		fout, err = os.Create(outputFileName)
		cobra.CheckErr(err)
	} else {
		fout = os.Stdout
	}
	logger.Debugw("files", "input", fin.Name(), "output", fout.Name())
	return fin, fout
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and reports them.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}

func versionString() string {
	return fmt.Sprintf("%s (commit %s, branch %s, %s, built %s)", Version, GitCommit, GitBranch, GitState, BuildDate)
}
