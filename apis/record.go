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

package apis

import (
	"bytes"
	"encoding/json"
)

// Record is one row of normalized data: an ordered mapping from column name
// to a JSON-safe scalar. Normalizers are the single point where source
// specific types are collapsed into this fixed set; a stored value is always
// one of:
//
//   - nil
//   - string (timestamps are already ISO-8601 formatted strings)
//   - bool
//   - int64 or float64 (never NaN or an infinity)
//   - json.Number (verbatim numeric literals from JSON sources)
//
// Column order is the order in which Set was first called for each column,
// and is preserved by MarshalJSON. The zero Record is empty and ready to use.
type Record struct {
	cols []string
	vals map[string]any
}

// MakeRecord returns an empty Record with capacity for n columns.
func MakeRecord(n int) Record {
	return Record{
		cols: make([]string, 0, n),
		vals: make(map[string]any, n),
	}
}

// Set stores a value under col. The first Set for a column appends it to the
// column order; later Sets overwrite the value in place.
func (r *Record) Set(col string, v any) {
	if r.vals == nil {
		r.vals = make(map[string]any)
	}
	if _, ok := r.vals[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = v
}

// Get returns the value stored under col and whether the column is present.
func (r Record) Get(col string) (any, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Columns returns the column names in insertion order.
// The returned slice is a copy and may be retained by the caller.
func (r Record) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.cols)
}

// MarshalJSON encodes the record as a JSON object with fields emitted in
// column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(r.vals[col])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
