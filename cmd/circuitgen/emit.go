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
	"bytes"
	"fmt"
	"go/format"
	"go/printer"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/tools/imports"
)

const generatedHeader = "// Code generated by circuitgen. DO NOT EDIT."

const circuitImport = "github.com/10d9e/circuit-sdk/circuit"

// Render lowers every parsed function and assembles the generated file.
// Rendering is deterministic: the same input produces byte-identical
// output.
func Render(result *ParseResult, pkgName, outName string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", generatedHeader)
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import (\n\t\"fmt\"\n\n\t%q\n)\n\n", circuitImport)
	for i := range result.Funcs {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := emitWrapper(&buf, result, &result.Funcs[i]); err != nil {
			return nil, err
		}
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	src, err = imports.Process(outName, src, nil)
	if err != nil {
		return nil, fmt.Errorf("fix generated imports: %w", err)
	}
	return src, nil
}

// emitWrapper writes the generic dispatch wrapper for one function. The
// inner generate closure acquires a fresh builder, binds each parameter to
// an input node in declaration order, evaluates the lowered body for the
// output node, and compiles (and, in execute mode, runs) the circuit. The
// trailing type switch instantiates it at the caller's width.
func emitWrapper(buf *bytes.Buffer, result *ParseResult, pf *ParsedFunc) error {
	r := &rewriter{funcName: pf.Name}
	body, err := r.rewriteBlock(pf.Decl.Body)
	if err != nil {
		return err
	}
	if !terminatesWithReturn(body) {
		return fmt.Errorf("%s: function body must end in a return", pf.Name)
	}

	name := wrapperName(pf.Name)
	ret := "T"
	if pf.Mode == ModeCompile {
		ret = "(circuit.Compiled, []bool)"
	}
	log.Debugf("generating %s wrapper %s from %s", pf.Mode, name, pf.Name)

	if pf.Mode == ModeCompile {
		fmt.Fprintf(buf, "// %s lowers %s to a circuit at T's width and returns it along\n// with the flattened input bits.\n", name, pf.Name)
	} else {
		fmt.Fprintf(buf, "// %s lowers %s to a circuit at T's width, executes it, and lifts\n// the result back to T.\n", name, pf.Name)
	}
	fmt.Fprintf(buf, "func %s[T circuit.Value](%s) %s {\n", name, paramList(pf.Params), ret)
	fmt.Fprintf(buf, "generate := func(width circuit.Width) %s {\n", ret)
	buf.WriteString("bld := circuit.NewBuilder(width)\n")
	for _, p := range pf.Params {
		fmt.Fprintf(buf, "%s := bld.Input(circuit.Lower(%s, width))\n", p.Name, p.Name)
	}
	buf.WriteString("output := ")
	if err := printer.Fprint(buf, result.FileSet, nodeClosure(body)); err != nil {
		return fmt.Errorf("%s: print lowered body: %w", pf.Name, err)
	}
	buf.WriteString("\n")
	if pf.Mode == ModeCompile {
		buf.WriteString("return bld.Compile(output), bld.Inputs()\n")
	} else {
		buf.WriteString("compiled := bld.Compile(output)\n")
		buf.WriteString("result, err := bld.Run(compiled)\n")
		buf.WriteString("if err != nil {\n")
		buf.WriteString("panic(fmt.Sprintf(\"circuit execution failed: %v\", err))\n")
		buf.WriteString("}\n")
		buf.WriteString("return circuit.Lift[T](result)\n")
	}
	buf.WriteString("}\n")

	fmt.Fprintf(buf, "switch any(%s).(type) {\n", pf.Params[0].Name)
	for _, ws := range widthTable {
		fmt.Fprintf(buf, "case %s:\nreturn generate(%s)\n", ws.CaseType, ws.WidthToken)
	}
	fmt.Fprintf(buf, "default:\npanic(fmt.Sprintf(\"unsupported element type %%T\", %s))\n", pf.Params[0].Name)
	buf.WriteString("}\n}\n")
	return nil
}

// wrapperName derives the generated wrapper's name from the source
// function: "BaseMax" becomes "Max", "baseMax" becomes "max". A name
// without the prefix gets a "Circuit" suffix so source and wrapper never
// collide within the package.
func wrapperName(name string) string {
	if after, ok := strings.CutPrefix(name, "Base"); ok && after != "" {
		return after
	}
	if after, ok := strings.CutPrefix(name, "base"); ok && after != "" {
		return strings.ToLower(after[:1]) + after[1:]
	}
	return name + "Circuit"
}

// paramList renders the wrapper's parameter list. Every parameter gets the
// element type parameter T: the pass assumes a single uniform scalar type.
func paramList(params []Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ") + " T"
}
