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
	"io"

	"github.com/bgallie/enigma/cryptors/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type wiringEntry struct {
	Name   string `yaml:"name"`
	Wiring string `yaml:"wiring"`
	Notch  string `yaml:"notch,omitempty"`
}

type catalogListing struct {
	Rotors     []wiringEntry `yaml:"rotors"`
	Reflectors []wiringEntry `yaml:"reflectors"`
}

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the rotors and reflectors",
	Long:  `List the wiring of the available rotors and reflectors, and the notch of each rotor, as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeCatalog(cmd.OutOrStdout())
	},
}

// settingsCmd represents the settings command
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the machine settings in effect",
	Long:  `Show, as YAML, the machine settings built from the flags, the environment and the config file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := settingsFromConfig()
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), settings)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(settingsCmd)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeCatalog(w io.Writer) error {
	var listing catalogListing
	for _, spec := range catalog.Rotors() {
		listing.Rotors = append(listing.Rotors, wiringEntry{
			Name:   spec.Name,
			Wiring: spec.Wiring.String(),
			Notch:  string(spec.Notch),
		})
	}
	for _, spec := range catalog.Reflectors() {
		listing.Reflectors = append(listing.Reflectors, wiringEntry{
			Name:   spec.Name,
			Wiring: spec.Wiring.String(),
		})
	}
	return writeYAML(w, listing)
}
