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

import "slices"

// Builder constructs a Boolean gate graph for a single generated-function
// invocation. It is not safe for concurrent use; independent invocations
// each get their own Builder and share nothing.
//
// All inputs must be bound before the first operation, since gate output
// wires are numbered after the input wires.
type Builder struct {
	width    Width
	inputs   []bool
	gates    []Gate
	zero     uint32
	one      uint32
	hasConst bool
}

// NewBuilder returns an empty builder for circuits over w-bit values.
func NewBuilder(w Width) *Builder {
	return &Builder{width: w}
}

// Width returns the element width the builder was created with.
func (b *Builder) Width() Width { return b.width }

// Inputs returns the flattened input bit vector, in binding order.
func (b *Builder) Inputs() []bool { return slices.Clone(b.inputs) }

// Input binds a concrete value, already lowered to bits, to fresh input
// wires and returns the node addressing them.
func (b *Builder) Input(bits []bool) Node {
	if len(b.gates) > 0 {
		panic("circuit: all inputs must be bound before operations")
	}
	wires := make([]uint32, len(bits))
	for i, bit := range bits {
		wires[i] = uint32(len(b.inputs))
		b.inputs = append(b.inputs, bit)
	}
	return Node{wires}
}

// Constant returns a node holding v modulo 2^w. Constants are synthesized
// from the first input wire (x XOR x = 0, NOT 0 = 1), so at least one input
// must already be bound.
func (b *Builder) Constant(v uint64) Node {
	zero, one := b.constWires()
	wires := make([]uint32, b.width.Bits())
	for i := range wires {
		if i < 64 && v>>uint(i)&1 == 1 {
			wires[i] = one
		} else {
			wires[i] = zero
		}
	}
	return Node{wires}
}

func (b *Builder) constWires() (zero, one uint32) {
	if !b.hasConst {
		if len(b.inputs) == 0 {
			panic("circuit: Constant requires at least one bound input")
		}
		b.zero = b.xorWire(0, 0)
		b.one = b.notWire(b.zero)
		b.hasConst = true
	}
	return b.zero, b.one
}

// Compile freezes the graph reachable from out into an evaluatable circuit.
func (b *Builder) Compile(out Node) Compiled {
	return Compiled{
		NumInputs: len(b.inputs),
		Gates:     slices.Clone(b.gates),
		Outputs:   slices.Clone(out.wires),
	}
}

// Run evaluates a compiled circuit against the builder's bound inputs.
func (b *Builder) Run(c Compiled) ([]bool, error) {
	return Evaluate(c, b.inputs)
}

// ---------------------------------------------------------------------------
// Bitwise operations

// Xor returns the bitwise exclusive-or of x and y.
func (b *Builder) Xor(x, y Node) Node {
	xs, ys := b.align(x, y)
	wires := make([]uint32, len(xs))
	for i := range xs {
		wires[i] = b.xorWire(xs[i], ys[i])
	}
	return Node{wires}
}

// And returns the bitwise conjunction of x and y.
func (b *Builder) And(x, y Node) Node {
	xs, ys := b.align(x, y)
	wires := make([]uint32, len(xs))
	for i := range xs {
		wires[i] = b.andWire(xs[i], ys[i])
	}
	return Node{wires}
}

// Or returns the bitwise disjunction of x and y.
func (b *Builder) Or(x, y Node) Node {
	xs, ys := b.align(x, y)
	wires := make([]uint32, len(xs))
	for i := range xs {
		wires[i] = b.orWire(xs[i], ys[i])
	}
	return Node{wires}
}

// Not returns the bitwise complement of x.
func (b *Builder) Not(x Node) Node {
	wires := make([]uint32, len(x.wires))
	for i, w := range x.wires {
		wires[i] = b.notWire(w)
	}
	return Node{wires}
}

// ---------------------------------------------------------------------------
// Arithmetic operations (modulo 2^w)

// Add returns x+y modulo 2^w via a ripple-carry adder.
func (b *Builder) Add(x, y Node) Node {
	xs, ys := b.align(x, y)
	zero, _ := b.constWires()
	return Node{b.addWires(xs, ys, zero)}
}

// Sub returns x-y modulo 2^w (two's complement).
func (b *Builder) Sub(x, y Node) Node {
	xs, ys := b.align(x, y)
	diff, _ := b.subWires(xs, ys)
	return Node{diff}
}

// Mul returns x*y modulo 2^w via shift-and-add partial products.
func (b *Builder) Mul(x, y Node) Node {
	xs, ys := b.align(x, y)
	w := len(xs)
	zero, _ := b.constWires()
	acc := fill(w, zero)
	for i := 0; i < w; i++ {
		part := fill(w, zero)
		for j := 0; i+j < w; j++ {
			part[i+j] = b.andWire(xs[i], ys[j])
		}
		acc = b.addWires(acc, part, zero)
	}
	return Node{acc}
}

// Div returns the unsigned quotient x/y. Division is total: a zero divisor
// yields an all-ones quotient.
func (b *Builder) Div(x, y Node) Node {
	q, _ := b.divRem(x, y)
	return q
}

// Rem returns the unsigned remainder x%y. A zero divisor yields x.
func (b *Builder) Rem(x, y Node) Node {
	_, r := b.divRem(x, y)
	return r
}

// divRem is restoring division, most significant bit first.
func (b *Builder) divRem(x, y Node) (q, r Node) {
	xs, ys := b.align(x, y)
	w := len(xs)
	zero, _ := b.constWires()
	rem := fill(w, zero)
	quot := fill(w, zero)
	for i := w - 1; i >= 0; i-- {
		// rem = rem<<1 | x_i
		shifted := make([]uint32, w)
		shifted[0] = xs[i]
		copy(shifted[1:], rem[:w-1])
		diff, borrow := b.subWires(shifted, ys)
		take := b.notWire(borrow) // rem >= y: commit the subtraction
		quot[i] = take
		next := make([]uint32, w)
		for j := 0; j < w; j++ {
			d := b.xorWire(diff[j], shifted[j])
			s := b.andWire(take, d)
			next[j] = b.xorWire(shifted[j], s)
		}
		rem = next
	}
	return Node{quot}, Node{rem}
}

// ---------------------------------------------------------------------------
// Comparisons (one-bit results)

// Eq returns a one-bit node: 1 iff x == y.
func (b *Builder) Eq(x, y Node) Node {
	return Node{[]uint32{b.notWire(b.anyDiff(x, y))}}
}

// Ne returns a one-bit node: 1 iff x != y.
func (b *Builder) Ne(x, y Node) Node {
	return Node{[]uint32{b.anyDiff(x, y)}}
}

// Lt returns a one-bit node: 1 iff x < y, unsigned. The bit is the borrow
// out of x-y.
func (b *Builder) Lt(x, y Node) Node {
	xs, ys := b.align(x, y)
	_, borrow := b.subWires(xs, ys)
	return Node{[]uint32{borrow}}
}

// Gt returns a one-bit node: 1 iff x > y, unsigned.
func (b *Builder) Gt(x, y Node) Node {
	return b.Lt(y, x)
}

// Le returns a one-bit node: 1 iff x <= y, unsigned.
func (b *Builder) Le(x, y Node) Node {
	return b.Not(b.Gt(x, y))
}

// Ge returns a one-bit node: 1 iff x >= y, unsigned.
func (b *Builder) Ge(x, y Node) Node {
	return b.Not(b.Lt(x, y))
}

func (b *Builder) anyDiff(x, y Node) uint32 {
	xs, ys := b.align(x, y)
	var acc uint32
	for i := range xs {
		d := b.xorWire(xs[i], ys[i])
		if i == 0 {
			acc = d
		} else {
			acc = b.orWire(acc, d)
		}
	}
	return acc
}

// ---------------------------------------------------------------------------
// Selection

// Mux selects x when cond's low bit is 1 and y otherwise. Both x and y are
// part of the graph and always evaluated; there is no short-circuit.
func (b *Builder) Mux(cond, x, y Node) Node {
	c := cond.wires[0]
	xs, ys := b.align(x, y)
	wires := make([]uint32, len(xs))
	for i := range xs {
		d := b.xorWire(xs[i], ys[i])
		s := b.andWire(c, d)
		wires[i] = b.xorWire(ys[i], s)
	}
	return Node{wires}
}

// ---------------------------------------------------------------------------
// Wire-level helpers

func (b *Builder) newGate(kind GateKind, a, c uint32) uint32 {
	b.gates = append(b.gates, Gate{Kind: kind, A: a, B: c})
	return uint32(len(b.inputs) + len(b.gates) - 1)
}

func (b *Builder) xorWire(a, c uint32) uint32 { return b.newGate(GateXor, a, c) }
func (b *Builder) andWire(a, c uint32) uint32 { return b.newGate(GateAnd, a, c) }
func (b *Builder) notWire(a uint32) uint32    { return b.newGate(GateNot, a, a) }

func (b *Builder) orWire(a, c uint32) uint32 {
	x := b.xorWire(a, c)
	n := b.andWire(a, c)
	return b.xorWire(x, n)
}

// addWires is a ripple-carry adder with explicit carry-in; the final carry
// is dropped, giving addition modulo 2^len.
func (b *Builder) addWires(xs, ys []uint32, carry uint32) []uint32 {
	out := make([]uint32, len(xs))
	for i := range xs {
		axb := b.xorWire(xs[i], ys[i])
		out[i] = b.xorWire(axb, carry)
		if i == len(xs)-1 {
			break
		}
		t1 := b.andWire(xs[i], ys[i])
		t2 := b.andWire(carry, axb)
		carry = b.xorWire(t1, t2)
	}
	return out
}

// subWires computes xs-ys as xs + ^ys + 1 and also returns the borrow bit,
// which is 1 exactly when xs < ys.
func (b *Builder) subWires(xs, ys []uint32) (diff []uint32, borrow uint32) {
	_, one := b.constWires()
	carry := one
	diff = make([]uint32, len(xs))
	for i := range xs {
		ny := b.notWire(ys[i])
		axb := b.xorWire(xs[i], ny)
		diff[i] = b.xorWire(axb, carry)
		t1 := b.andWire(xs[i], ny)
		t2 := b.andWire(carry, axb)
		carry = b.xorWire(t1, t2)
	}
	return diff, b.notWire(carry)
}

// align pads the narrower operand with zero wires so both sides have the
// same bit count. One-bit comparison results widen transparently.
func (b *Builder) align(x, y Node) ([]uint32, []uint32) {
	n := len(x.wires)
	if len(y.wires) > n {
		n = len(y.wires)
	}
	return b.pad(x.wires, n), b.pad(y.wires, n)
}

func (b *Builder) pad(wires []uint32, n int) []uint32 {
	if len(wires) >= n {
		return wires
	}
	zero, _ := b.constWires()
	out := make([]uint32, n)
	copy(out, wires)
	for i := len(wires); i < n; i++ {
		out[i] = zero
	}
	return out
}

func fill(n int, w uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = w
	}
	return out
}
