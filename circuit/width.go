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

// Package circuit builds and evaluates Boolean gate graphs over fixed-width
// unsigned integers, as used for secure/garbled computation. A Builder
// allocates input wires for concrete scalar values, constructs gates for
// arithmetic, comparison, bitwise and multiplexer operations, and compiles
// the resulting graph into a Compiled circuit that can be evaluated.
//
// Circuits have no control flow: both arms of every Mux are part of the
// graph and are always evaluated, whatever the condition's value.
package circuit

// Width is the bit width of a circuit's element type. The supported set is
// fixed: 8, 16, 32, 64 and 128 bits.
type Width int

const (
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// Widths lists every supported width, narrowest first.
func Widths() []Width {
	return []Width{Width8, Width16, Width32, Width64, Width128}
}

// Bits returns the width as a bit count.
func (w Width) Bits() int { return int(w) }

// Valid reports whether w is one of the supported widths.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64, Width128:
		return true
	}
	return false
}
