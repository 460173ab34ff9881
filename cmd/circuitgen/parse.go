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
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
)

// Mode selects the shape of a generated wrapper: compile mode returns the
// circuit plus the collected input encoding, execute mode also runs the
// circuit and lifts the result back to the element type.
type Mode string

const (
	ModeCompile Mode = "compile"
	ModeExecute Mode = "execute"
)

const directivePrefix = "//circuit:"

// Param is one declared parameter of an annotated function.
type Param struct {
	Name string
	Type string
}

// ParsedFunc is an annotated source function awaiting lowering.
type ParsedFunc struct {
	Name     string
	Mode     Mode
	ElemType string // type token of the first parameter
	Params   []Param
	Decl     *ast.FuncDecl
}

// ParseResult holds everything parsed out of one input file.
type ParseResult struct {
	PackageName string
	FileSet     *token.FileSet
	Funcs       []ParsedFunc
}

// reservedNames are identifiers the generated wrapper introduces itself; a
// parameter using one would be shadowed, so it is rejected up front.
var reservedNames = map[string]bool{
	"bld":      true,
	"width":    true,
	"generate": true,
	"output":   true,
	"compiled": true,
	"result":   true,
	"err":      true,
	"ifTrue":   true,
	"ifFalse":  true,
	"T":        true,
}

// Parse reads a Go source file and collects every function carrying a
// //circuit: directive. A malformed annotated function is a fatal error;
// functions without a directive are ignored.
func Parse(filename string) (*ParseResult, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	return parseFile(fset, file)
}

func parseFile(fset *token.FileSet, file *ast.File) (*ParseResult, error) {
	result := &ParseResult{PackageName: file.Name.Name, FileSet: fset}
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		mode, ok, err := directiveMode(fd.Doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fd.Name.Name, err)
		}
		if !ok {
			continue
		}
		elem, params, err := extractSignature(fd)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fd.Name.Name, err)
		}
		if !supportedElemType(elem) {
			return nil, fmt.Errorf("%s: unsupported element type %q (supported: %s)",
				fd.Name.Name, elem, supportedTokens())
		}
		result.Funcs = append(result.Funcs, ParsedFunc{
			Name:     fd.Name.Name,
			Mode:     mode,
			ElemType: elem,
			Params:   params,
			Decl:     fd,
		})
	}
	return result, nil
}

// directiveMode scans a doc comment for a //circuit: directive. Any mode
// outside the enumerated set is a fatal configuration error.
func directiveMode(doc *ast.CommentGroup) (Mode, bool, error) {
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		mode := Mode(strings.TrimSpace(strings.TrimPrefix(c.Text, directivePrefix)))
		switch mode {
		case ModeCompile, ModeExecute:
			return mode, true, nil
		default:
			return "", false, fmt.Errorf("unknown circuit mode %q (want compile or execute)", string(mode))
		}
	}
	return "", false, nil
}

// extractSignature pulls the element type and the declared parameters out
// of a function declaration. The element type is the first parameter's; by
// convention all parameters and the return value share it, and this is not
// verified past the first.
func extractSignature(fd *ast.FuncDecl) (string, []Param, error) {
	if fd.Recv != nil {
		return "", nil, fmt.Errorf("methods cannot be lowered")
	}
	if fd.Type.TypeParams != nil {
		return "", nil, fmt.Errorf("type parameters are added by the generator; declare concrete parameter types")
	}
	if fd.Type.Params == nil || len(fd.Type.Params.List) == 0 {
		return "", nil, fmt.Errorf("expected at least one parameter")
	}
	var params []Param
	for _, field := range fd.Type.Params.List {
		if len(field.Names) == 0 {
			return "", nil, fmt.Errorf("parameters must be simple named identifiers")
		}
		typ := types.ExprString(field.Type)
		for _, name := range field.Names {
			if name.Name == "_" {
				return "", nil, fmt.Errorf("parameters must be simple named identifiers")
			}
			if reservedNames[name.Name] {
				return "", nil, fmt.Errorf("parameter name %q is reserved by the generator", name.Name)
			}
			params = append(params, Param{Name: name.Name, Type: typ})
		}
	}
	results := fd.Type.Results
	if results == nil || len(results.List) == 0 {
		return "", nil, fmt.Errorf("expected a typed return value")
	}
	if len(results.List) > 1 || len(results.List[0].Names) > 1 {
		return "", nil, fmt.Errorf("expected exactly one return value")
	}
	if fd.Body == nil {
		return "", nil, fmt.Errorf("expected a function body")
	}
	return params[0].Type, params, nil
}
