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
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

// parseSource parses Go source text the way Parse parses a file.
func parseSource(src string) (*ParseResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "input.go", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return parseFile(fset, file)
}

// render parses and renders source text, failing the test on any error.
func render(t *testing.T, src string) string {
	t.Helper()
	result, err := parseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := Render(result, result.PackageName, "input.gen.go")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

// renderErr parses and renders source text, returning the first error.
func renderErr(src string) error {
	result, err := parseSource(src)
	if err != nil {
		return err
	}
	_, err = Render(result, result.PackageName, "input.gen.go")
	return err
}

func TestParseDirectives(t *testing.T) {
	src := `package sample

//circuit:execute
func BaseMax(a uint8, b uint8) uint8 {
	return a
}

// BaseSum adds.
//
//circuit:compile
func BaseSum(a uint16, b uint16) uint16 {
	return a + b
}

func helper(a uint8) uint8 {
	return a
}
`
	result, err := parseSource(src)
	if err != nil {
		t.Fatalf("parseSource: %v", err)
	}
	if len(result.Funcs) != 2 {
		t.Fatalf("got %d annotated functions, want 2", len(result.Funcs))
	}
	if result.Funcs[0].Name != "BaseMax" || result.Funcs[0].Mode != ModeExecute {
		t.Errorf("func 0 = (%s, %s), want (BaseMax, execute)", result.Funcs[0].Name, result.Funcs[0].Mode)
	}
	if result.Funcs[1].Name != "BaseSum" || result.Funcs[1].Mode != ModeCompile {
		t.Errorf("func 1 = (%s, %s), want (BaseSum, compile)", result.Funcs[1].Name, result.Funcs[1].Mode)
	}
	if result.Funcs[1].ElemType != "uint16" {
		t.Errorf("ElemType = %q, want uint16", result.Funcs[1].ElemType)
	}
}

func TestParseUnknownMode(t *testing.T) {
	src := `package sample

//circuit:interpret
func BaseF(a uint8) uint8 {
	return a
}
`
	_, err := parseSource(src)
	if err == nil || !strings.Contains(err.Error(), "unknown circuit mode") {
		t.Errorf("got err %v, want unknown circuit mode", err)
	}
}

func TestParseSignatureErrors(t *testing.T) {
	tests := []struct {
		name    string
		decl    string
		wantErr string
	}{
		{
			"no parameters",
			"func BaseF() uint8 {\n\treturn 1\n}",
			"at least one parameter",
		},
		{
			"unnamed parameter",
			"func BaseF(uint8) uint8 {\n\treturn 1\n}",
			"simple named identifiers",
		},
		{
			"blank parameter",
			"func BaseF(_ uint8) uint8 {\n\treturn 1\n}",
			"simple named identifiers",
		},
		{
			"missing return type",
			"func BaseF(a uint8) {\n}",
			"typed return value",
		},
		{
			"multiple returns",
			"func BaseF(a uint8) (uint8, uint8) {\n\treturn a, a\n}",
			"exactly one return value",
		},
		{
			"unsupported element type",
			"func BaseF(a int) int {\n\treturn a\n}",
			"unsupported element type",
		},
		{
			"signed width token",
			"func BaseF(a int32) int32 {\n\treturn a\n}",
			"unsupported element type",
		},
		{
			"reserved parameter name",
			"func BaseF(bld uint8) uint8 {\n\treturn bld\n}",
			"reserved",
		},
		{
			"explicit type parameters",
			"func BaseF[T any](a T) T {\n\treturn a\n}",
			"type parameters",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package sample\n\n//circuit:execute\n" + tt.decl + "\n"
			_, err := parseSource(src)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got err %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseByteAlias(t *testing.T) {
	src := `package sample

//circuit:execute
func BaseF(a byte) byte {
	return a
}
`
	result, err := parseSource(src)
	if err != nil {
		t.Fatalf("parseSource: %v", err)
	}
	if result.Funcs[0].ElemType != "byte" {
		t.Errorf("ElemType = %q, want byte", result.Funcs[0].ElemType)
	}
}

func TestParseFlattensParamGroups(t *testing.T) {
	src := `package sample

//circuit:execute
func BaseF(a, b uint8, c uint8) uint8 {
	return a
}
`
	result, err := parseSource(src)
	if err != nil {
		t.Fatalf("parseSource: %v", err)
	}
	params := result.Funcs[0].Params
	if len(params) != 3 {
		t.Fatalf("got %d params, want 3", len(params))
	}
	for i, want := range []string{"a", "b", "c"} {
		if params[i].Name != want {
			t.Errorf("param %d = %q, want %q", i, params[i].Name, want)
		}
	}
}
