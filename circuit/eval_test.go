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

package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/10d9e/circuit-sdk/circuit"
)

func TestEvaluateInputLengthMismatch(t *testing.T) {
	bld := circuit.NewBuilder(circuit.Width8)
	x := bld.Input(circuit.Lower(uint8(1), circuit.Width8))
	compiled := bld.Compile(x)

	_, err := circuit.Evaluate(compiled, make([]bool, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 8 input bits")
}

func TestEvaluateMalformedCircuit(t *testing.T) {
	tests := []struct {
		name     string
		compiled circuit.Compiled
	}{
		{
			"gate references future wire",
			circuit.Compiled{
				NumInputs: 1,
				Gates:     []circuit.Gate{{Kind: circuit.GateXor, A: 5, B: 0}},
				Outputs:   []uint32{1},
			},
		},
		{
			"output references undefined wire",
			circuit.Compiled{
				NumInputs: 1,
				Outputs:   []uint32{9},
			},
		},
		{
			"invalid gate kind",
			circuit.Compiled{
				NumInputs: 1,
				Gates:     []circuit.Gate{{Kind: circuit.GateKind(200), A: 0, B: 0}},
				Outputs:   []uint32{1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := circuit.Evaluate(tt.compiled, make([]bool, tt.compiled.NumInputs))
			assert.Error(t, err)
		})
	}
}

func TestEvaluateStandalone(t *testing.T) {
	// A compiled circuit is reusable with fresh input encodings.
	bld := circuit.NewBuilder(circuit.Width8)
	x := bld.Input(circuit.Lower(uint8(0), circuit.Width8))
	y := bld.Input(circuit.Lower(uint8(0), circuit.Width8))
	compiled := bld.Compile(bld.Add(x, y))

	for _, in := range [][2]uint8{{1, 2}, {200, 100}, {255, 255}} {
		bits := append(circuit.Lower(in[0], circuit.Width8), circuit.Lower(in[1], circuit.Width8)...)
		out, err := circuit.Evaluate(compiled, bits)
		require.NoError(t, err)
		assert.Equal(t, in[0]+in[1], circuit.Lift[uint8](out))
	}
}
