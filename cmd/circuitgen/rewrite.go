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
	"go/token"

	log "github.com/sirupsen/logrus"
)

// builderIdent is the receiver of every lowered operation in generated code.
const builderIdent = "bld"

// binaryOps maps Go binary operators to Builder methods. The mapping is
// exhaustive over the supported operator set and never swaps operand order.
var binaryOps = map[token.Token]string{
	token.EQL: "Eq",
	token.NEQ: "Ne",
	token.GTR: "Gt",
	token.GEQ: "Ge",
	token.LSS: "Lt",
	token.LEQ: "Le",
	token.ADD: "Add",
	token.SUB: "Sub",
	token.MUL: "Mul",
	token.QUO: "Div",
	token.REM: "Rem",
	token.AND: "And",
	token.OR:  "Or",
	token.XOR: "Xor",
}

// rewriter lowers one function body into builder calls.
type rewriter struct {
	funcName string
}

func (r *rewriter) rewriteBlock(block *ast.BlockStmt) (*ast.BlockStmt, error) {
	out := &ast.BlockStmt{}
	for _, stmt := range block.List {
		lowered, err := r.rewriteStmt(stmt)
		if err != nil {
			return nil, err
		}
		out.List = append(out.List, lowered...)
	}
	return out, nil
}

// rewriteStmt lowers a single statement. Statement kinds outside the
// supported set (loops, switches, declarations) pass through untouched:
// arithmetic inside them is NOT lowered. That is a hard scope boundary of
// the pass, so a warning makes the miscompilation visible.
func (r *rewriter) rewriteStmt(stmt ast.Stmt) ([]ast.Stmt, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		expr, err := r.rewriteExpr(s.X)
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.ExprStmt{X: expr}}, nil
	case *ast.AssignStmt:
		rhs := make([]ast.Expr, len(s.Rhs))
		for i, e := range s.Rhs {
			lowered, err := r.rewriteExpr(e)
			if err != nil {
				return nil, err
			}
			rhs[i] = lowered
		}
		return []ast.Stmt{&ast.AssignStmt{Lhs: s.Lhs, Tok: s.Tok, Rhs: rhs}}, nil
	case *ast.ReturnStmt:
		if len(s.Results) != 1 {
			return nil, fmt.Errorf("%s: expected exactly one return value", r.funcName)
		}
		expr, err := r.rewriteExpr(s.Results[0])
		if err != nil {
			return nil, err
		}
		return []ast.Stmt{&ast.ReturnStmt{Results: []ast.Expr{expr}}}, nil
	case *ast.IfStmt:
		return r.lowerIf(s)
	default:
		log.Warnf("%s: %T statement is not lowered; any arithmetic inside it stays scalar",
			r.funcName, stmt)
		return []ast.Stmt{stmt}, nil
	}
}

// lowerIf rewrites a two-armed conditional into a multiplexer. Circuits
// cannot branch at evaluation time, so both arms are built into the graph
// and always evaluated, whatever the condition's value; the Mux selects
// between the two already-computed results. A conditional without an else
// arm has no value on one side and cannot be lowered.
func (r *rewriter) lowerIf(s *ast.IfStmt) ([]ast.Stmt, error) {
	if s.Init != nil {
		return nil, fmt.Errorf("%s: if statements with init clauses are not supported", r.funcName)
	}
	if s.Else == nil {
		return nil, fmt.Errorf("%s: conditional without an else arm cannot be lowered", r.funcName)
	}
	elseBlock, ok := s.Else.(*ast.BlockStmt)
	if !ok {
		return nil, fmt.Errorf("%s: else-if chains are not supported; nest an explicit block", r.funcName)
	}
	thenVal, err := r.branchValue(s.Body)
	if err != nil {
		return nil, err
	}
	elseVal, err := r.branchValue(elseBlock)
	if err != nil {
		return nil, err
	}
	cond, err := r.rewriteExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	// Scoped in a bare block so sibling conditionals cannot collide.
	return []ast.Stmt{&ast.BlockStmt{List: []ast.Stmt{
		define(ast.NewIdent("ifTrue"), thenVal),
		define(ast.NewIdent("ifFalse"), elseVal),
		&ast.ReturnStmt{Results: []ast.Expr{
			bldCall("Mux", cond, ast.NewIdent("ifTrue"), ast.NewIdent("ifFalse")),
		}},
	}}}, nil
}

// branchValue lowers a conditional arm into an immediately-invoked closure
// producing the arm's value.
func (r *rewriter) branchValue(block *ast.BlockStmt) (ast.Expr, error) {
	lowered, err := r.rewriteBlock(block)
	if err != nil {
		return nil, err
	}
	if !terminatesWithReturn(lowered) {
		return nil, fmt.Errorf("%s: conditional arm must end in a return", r.funcName)
	}
	return nodeClosure(lowered), nil
}

// rewriteExpr lowers an expression tree bottom-up. Operands are rewritten
// recursively for every operator, comparison and arithmetic alike; integer
// literals become constant nodes. Expression shapes outside the operator
// map pass through verbatim.
func (r *rewriter) rewriteExpr(expr ast.Expr) (ast.Expr, error) {
	switch e := expr.(type) {
	case *ast.ParenExpr:
		return r.rewriteExpr(e.X)
	case *ast.BinaryExpr:
		method, ok := binaryOps[e.Op]
		if !ok {
			log.Warnf("%s: operator %s is not lowered", r.funcName, e.Op)
			return e, nil
		}
		left, err := r.rewriteExpr(e.X)
		if err != nil {
			return nil, err
		}
		right, err := r.rewriteExpr(e.Y)
		if err != nil {
			return nil, err
		}
		return bldCall(method, left, right), nil
	case *ast.UnaryExpr:
		if e.Op == token.XOR || e.Op == token.NOT {
			operand, err := r.rewriteExpr(e.X)
			if err != nil {
				return nil, err
			}
			return bldCall("Not", operand), nil
		}
		log.Warnf("%s: unary operator %s is not lowered", r.funcName, e.Op)
		return e, nil
	case *ast.BasicLit:
		if e.Kind == token.INT {
			return bldCall("Constant", e), nil
		}
		return e, nil
	default:
		return expr, nil
	}
}

// terminatesWithReturn reports whether a lowered block ends in a return,
// looking through the bare blocks that conditional lowering introduces.
func terminatesWithReturn(block *ast.BlockStmt) bool {
	if len(block.List) == 0 {
		return false
	}
	switch last := block.List[len(block.List)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BlockStmt:
		return terminatesWithReturn(last)
	}
	return false
}

func bldCall(method string, args ...ast.Expr) *ast.CallExpr {
	return &ast.CallExpr{
		Fun:  &ast.SelectorExpr{X: ast.NewIdent(builderIdent), Sel: ast.NewIdent(method)},
		Args: args,
	}
}

// nodeClosure wraps a lowered block in an immediately-invoked
// func() circuit.Node literal.
func nodeClosure(body *ast.BlockStmt) ast.Expr {
	lit := &ast.FuncLit{
		Type: &ast.FuncType{
			Params: &ast.FieldList{},
			Results: &ast.FieldList{List: []*ast.Field{{
				Type: &ast.SelectorExpr{X: ast.NewIdent("circuit"), Sel: ast.NewIdent("Node")},
			}}},
		},
		Body: body,
	}
	return &ast.CallExpr{Fun: lit}
}

func define(name *ast.Ident, rhs ast.Expr) ast.Stmt {
	return &ast.AssignStmt{Lhs: []ast.Expr{name}, Tok: token.DEFINE, Rhs: []ast.Expr{rhs}}
}
