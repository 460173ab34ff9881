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

import "strings"

// widthSpec ties a source element-type token to the tokens used in one
// generated dispatch arm.
type widthSpec struct {
	Bits       int
	CaseType   string // type in the generated switch arm
	WidthToken string // circuit.Width* constant
}

// widthTable is the fixed dispatch set, narrowest first. Dispatch in
// generated code is an exact type switch over these five types; any other
// element type hits the default arm and panics.
var widthTable = []widthSpec{
	{8, "uint8", "circuit.Width8"},
	{16, "uint16", "circuit.Width16"},
	{32, "uint32", "circuit.Width32"},
	{64, "uint64", "circuit.Width64"},
	{128, "circuit.Uint128", "circuit.Width128"},
}

// supportedElemType reports whether a source type token names one of the
// supported widths. "byte" is accepted as an alias for uint8.
func supportedElemType(token string) bool {
	if token == "byte" {
		return true
	}
	for _, ws := range widthTable {
		if ws.CaseType == token {
			return true
		}
	}
	return false
}

func supportedTokens() string {
	tokens := make([]string, 0, len(widthTable)+1)
	for _, ws := range widthTable {
		tokens = append(tokens, ws.CaseType)
		if ws.Bits == 8 {
			tokens = append(tokens, "byte")
		}
	}
	return strings.Join(tokens, ", ")
}
