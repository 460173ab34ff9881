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

// GateKind identifies a gate's Boolean function. The gate set is the usual
// garbled-circuit basis: XOR, AND and NOT.
type GateKind uint8

const (
	GateXor GateKind = iota
	GateAnd
	GateNot
)

func (k GateKind) String() string {
	switch k {
	case GateXor:
		return "XOR"
	case GateAnd:
		return "AND"
	case GateNot:
		return "NOT"
	}
	return "INVALID"
}

// Gate is one gate in a compiled circuit. A and B are input wire indices;
// NOT gates ignore B. Gate i drives wire NumInputs+i.
type Gate struct {
	Kind GateKind
	A, B uint32
}

// Node is an opaque handle to a value in the graph under construction: one
// wire per bit, least significant first. Comparison results are one bit.
type Node struct {
	wires []uint32
}

// Len returns the node's bit width.
func (n Node) Len() int { return len(n.wires) }

// Compiled is a frozen circuit: input wires 0..NumInputs-1 followed by one
// wire per gate, with Outputs naming the wires of the result bits.
type Compiled struct {
	NumInputs int
	Gates     []Gate
	Outputs   []uint32
}

// NumGates returns the gate count.
func (c Compiled) NumGates() int { return len(c.Gates) }

// NumWires returns the total wire count, inputs included.
func (c Compiled) NumWires() int { return c.NumInputs + len(c.Gates) }
