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

import "fmt"

// Uint128 is the 128-bit element type. Go has no native uint128, so the
// widest supported width gets a two-limb representation.
type Uint128 struct {
	Hi, Lo uint64
}

// NewUint128 builds a Uint128 from its high and low 64-bit limbs.
func NewUint128(hi, lo uint64) Uint128 {
	return Uint128{Hi: hi, Lo: lo}
}

func (u Uint128) String() string {
	return fmt.Sprintf("0x%016x%016x", u.Hi, u.Lo)
}

// Value constrains the element types a generated circuit wrapper accepts.
// Named types based on the native widths satisfy the constraint but are
// rejected at dispatch time, matching the exact-token dispatch of the
// generated code.
type Value interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | Uint128
}

// Lower encodes v as w bits, least significant first. Values wider than w
// are truncated, so the encoding is always v modulo 2^w.
func Lower[T Value](v T, w Width) []bool {
	var hi, lo uint64
	switch x := any(v).(type) {
	case uint8:
		lo = uint64(x)
	case uint16:
		lo = uint64(x)
	case uint32:
		lo = uint64(x)
	case uint64:
		lo = x
	case Uint128:
		hi, lo = x.Hi, x.Lo
	default:
		panic(fmt.Sprintf("circuit: unsupported element type %T", v))
	}
	bits := make([]bool, w.Bits())
	for i := range bits {
		if i < 64 {
			bits[i] = lo>>uint(i)&1 == 1
		} else {
			bits[i] = hi>>uint(i-64)&1 == 1
		}
	}
	return bits
}

// Lift decodes a little-endian bit vector back into T. Missing high bits
// are zero; bits beyond T's width are dropped by the conversion.
func Lift[T Value](bits []bool) T {
	var hi, lo uint64
	for i, b := range bits {
		if !b {
			continue
		}
		switch {
		case i < 64:
			lo |= 1 << uint(i)
		case i < 128:
			hi |= 1 << uint(i-64)
		}
	}
	var v T
	switch any(v).(type) {
	case uint8:
		return any(uint8(lo)).(T)
	case uint16:
		return any(uint16(lo)).(T)
	case uint32:
		return any(uint32(lo)).(T)
	case uint64:
		return any(lo).(T)
	case Uint128:
		return any(Uint128{Hi: hi, Lo: lo}).(T)
	default:
		panic(fmt.Sprintf("circuit: unsupported element type %T", v))
	}
}
