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

package circuit

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Evaluate runs a compiled circuit on the given input bits and returns the
// output bits. Every gate is evaluated; there is no conditional execution.
// It fails if the input vector has the wrong length or the circuit is
// malformed (a gate or output referencing an undefined wire).
func Evaluate(c Compiled, inputs []bool) ([]bool, error) {
	if len(inputs) != c.NumInputs {
		return nil, fmt.Errorf("circuit: expected %d input bits, got %d", c.NumInputs, len(inputs))
	}
	wires := bitset.New(uint(c.NumWires()))
	for i, bit := range inputs {
		wires.SetTo(uint(i), bit)
	}
	next := uint(c.NumInputs)
	for i, g := range c.Gates {
		if uint(g.A) >= next || uint(g.B) >= next {
			return nil, fmt.Errorf("circuit: gate %d references undefined wire", i)
		}
		var v bool
		switch g.Kind {
		case GateXor:
			v = wires.Test(uint(g.A)) != wires.Test(uint(g.B))
		case GateAnd:
			v = wires.Test(uint(g.A)) && wires.Test(uint(g.B))
		case GateNot:
			v = !wires.Test(uint(g.A))
		default:
			return nil, fmt.Errorf("circuit: gate %d has invalid kind %d", i, g.Kind)
		}
		wires.SetTo(next, v)
		next++
	}
	out := make([]bool, len(c.Outputs))
	for i, w := range c.Outputs {
		if uint(w) >= next {
			return nil, fmt.Errorf("circuit: output %d references undefined wire %d", i, w)
		}
		out[i] = wires.Test(uint(w))
	}
	return out, nil
}
