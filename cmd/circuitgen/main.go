// Copyright 2025 circuit-sdk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// circuitgen lowers annotated Go functions into garbled-circuit builder
// calls. It is intended to be run via go:generate next to the annotated
// source file.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "circuitgen",
	Short: "Lowers annotated Go functions into garbled-circuit builder calls.",
	Long: `circuitgen reads a Go source file, finds every function annotated with a
//circuit:compile or //circuit:execute directive, rewrites its body into
circuit-builder operations (conditionals become multiplexers, since circuits
cannot branch), and writes a sibling .gen.go file containing one
width-dispatching generic wrapper per function.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		pkg, _ := cmd.Flags().GetString("package")
		g := &Generator{InputFile: input, OutputDir: output, PackageOut: pkg}
		return g.Run()
	},
}

func init() {
	rootCmd.Flags().StringP("input", "i", "", "input Go source file with //circuit: directives")
	rootCmd.Flags().StringP("output", "o", ".", "output directory for the generated file")
	rootCmd.Flags().String("package", "", "package name for generated code (defaults to the input's)")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	_ = rootCmd.MarkFlagRequired("input")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
