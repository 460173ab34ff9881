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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Generator orchestrates one transformation: parse the input file, lower
// every annotated function, render the generated source, write it out.
// Any error aborts before the output file is touched.
type Generator struct {
	InputFile  string // input Go source file
	OutputDir  string // output directory
	PackageOut string // output package name (defaults to the input's)
}

// Run executes the generation pipeline.
func (g *Generator) Run() error {
	result, err := Parse(g.InputFile)
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	if len(result.Funcs) == 0 {
		return fmt.Errorf("no functions with circuit directives found in %s", g.InputFile)
	}
	pkg := g.PackageOut
	if pkg == "" {
		pkg = result.PackageName
	}
	outName := outputFilename(g.InputFile)
	src, err := Render(result, pkg, outName)
	if err != nil {
		return err
	}
	outPath := filepath.Join(g.OutputDir, outName)
	if err := os.WriteFile(outPath, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Infof("wrote %s (%d wrappers)", outPath, len(result.Funcs))
	return nil
}

// outputFilename maps an input file name to its generated sibling:
// macro_base.go becomes macro.gen.go.
func outputFilename(input string) string {
	base := strings.TrimSuffix(filepath.Base(input), ".go")
	base = strings.TrimSuffix(base, "_base")
	return base + ".gen.go"
}
