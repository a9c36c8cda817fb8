/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package normalizer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInferScalar(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", nil},
		{"   ", nil},
		{"NaN", nil},
		{"nan", nil},
		{"null", nil},
		{"true", true},
		{"False", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"3.14", 3.14},
		{"1e3", 1000.0},
		{"hello", "hello"},
		{"0042a", "0042a"},
		// Timestamps re-emit as ISO-8601.
		{"2024-03-01", "2024-03-01T00:00:00"},
		{"2024-03-01 12:30:45", "2024-03-01T12:30:45"},
		{"2024-03-01T12:30:45", "2024-03-01T12:30:45"},
		{"03/01/2024", "2024-03-01T00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferScalar(tt.in), "inferScalar(%q)", tt.in)
	}
}

func TestInferScalar_InfinitiesBecomeNil(t *testing.T) {
	assert.Nil(t, inferScalar("Inf"))
	assert.Nil(t, inferScalar("-Inf"))
}

func TestNormalizeScalar(t *testing.T) {
	assert.Nil(t, normalizeScalar(math.NaN()))
	assert.Nil(t, normalizeScalar(math.Inf(1)))
	assert.Nil(t, normalizeScalar(math.Inf(-1)))
	assert.Equal(t, 2.5, normalizeScalar(2.5))
	assert.Equal(t, "x", normalizeScalar("x"))
	assert.Equal(t, true, normalizeScalar(true))
	assert.Nil(t, normalizeScalar(nil))

	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01T00:00:00", normalizeScalar(ts))
}
