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
	"strconv"
	"strings"
	"time"
)

// isoLayout is the layout of normalized timestamps, e.g.
// "2024-03-01T00:00:00".
const isoLayout = "2006-01-02T15:04:05"

// dateLayouts are the textual timestamp forms recognized by inferScalar,
// tried in order. The set covers ISO-8601 variants plus the formats
// spreadsheet cells commonly render to.
var dateLayouts = []string{
	time.RFC3339,
	isoLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/06 15:04",
	"01-02-06",
}

// normalizeScalar collapses a typed value into one of the JSON-safe scalars
// a Record may hold. NaN and infinities become nil; time.Time becomes an
// ISO-8601 string.
func normalizeScalar(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		return normalizeScalar(float64(x))
	case time.Time:
		return x.Format(isoLayout)
	default:
		return v
	}
}

// inferScalar converts one textual cell into a JSON-safe scalar. Inference
// is applied cell by cell (row-wise, never per column): empty and NaN
// spellings become nil, booleans and numbers are parsed, recognized
// timestamp forms are re-emitted as ISO-8601 strings, and anything else
// stays a string.
func inferScalar(text string) any {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "nan", "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return normalizeScalar(f)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoLayout)
		}
	}
	return s
}
