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
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"dirpx.dev/tabx/apis"
)

// NewDocument returns the Normalizer for JSON documents.
//
// A top-level object yields one table per key whose value is an array of
// objects; other keys are skipped. A top-level array of objects yields a
// single table with an empty local name ("name after the file"). Decoding
// is token-based so top-level key order and per-record field order survive
// into the snapshot.
func NewDocument() apis.Normalizer {
	return document{}
}

type document struct{}

// Normalize implements apis.Normalizer.
func (document) Normalize(path string) ([]apis.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, formatErr(path, "unreadable file", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, formatErr(path, "invalid JSON", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, formatErr(path, "top-level value must be an object or an array", nil)
	}

	switch delim {
	case '{':
		return decodeTopObject(path, dec)
	case '[':
		arr, err := readArrayTail(dec)
		if err != nil {
			return nil, formatErr(path, "invalid JSON", err)
		}
		return []apis.Table{{Records: objectRecords(arr)}}, nil
	default:
		return nil, formatErr(path, "top-level value must be an object or an array", nil)
	}
}

// decodeTopObject walks the keys of a top-level object in document order.
// Keys whose value is an array of objects become tables; everything else is
// skipped.
func decodeTopObject(path string, dec *json.Decoder) ([]apis.Table, error) {
	var tables []apis.Table
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, formatErr(path, "invalid JSON", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, formatErr(path, "invalid JSON", fmt.Errorf("unexpected token %v", tok))
		}
		v, err := readValue(dec)
		if err != nil {
			return nil, formatErr(path, "invalid JSON", err)
		}
		arr, ok := v.([]any)
		if !ok {
			continue // non-array value under key
		}
		records, allObjects := recordsOf(arr)
		if !allObjects {
			continue // array holding non-object values
		}
		tables = append(tables, apis.Table{Name: key, Records: records})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, formatErr(path, "invalid JSON", err)
	}
	return tables, nil
}

// jsonObject is a decoded object with its field order intact. It exists
// only during decoding; record construction collapses it.
type jsonObject struct {
	keys []string
	vals []any
}

// MarshalJSON re-emits the object with fields in document order.
func (o *jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// readValue reads one complete JSON value from dec and returns it as a
// *jsonObject, []any, or a scalar token.
func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return readObjectTail(dec)
		case '[':
			return readArrayTail(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", d)
		}
	}
	return tok, nil
}

// readObjectTail reads the remainder of an object (its opening brace
// already consumed), preserving field order.
func readObjectTail(dec *json.Decoder) (*jsonObject, error) {
	obj := &jsonObject{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		v, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		obj.keys = append(obj.keys, key)
		obj.vals = append(obj.vals, v)
	}
	_, err := dec.Token() // closing brace
	return obj, err
}

// readArrayTail reads the remainder of an array (its opening bracket
// already consumed).
func readArrayTail(dec *json.Decoder) ([]any, error) {
	out := []any{}
	for dec.More() {
		v, err := readValue(dec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	_, err := dec.Token() // closing bracket
	return out, err
}

// recordOf collapses a decoded object into a Record. Composite field values
// are re-serialized to their compact JSON text so record values stay
// scalar.
func recordOf(obj *jsonObject) apis.Record {
	rec := apis.MakeRecord(len(obj.keys))
	for i, key := range obj.keys {
		rec.Set(key, fieldScalar(obj.vals[i]))
	}
	return rec
}

// fieldScalar collapses one decoded field value into a JSON-safe scalar.
func fieldScalar(v any) any {
	switch v.(type) {
	case *jsonObject, []any:
		b, err := json.Marshal(v)
		if err != nil {
			// Decoded values always re-marshal; keep the field present.
			return nil
		}
		return string(b)
	default:
		// string, json.Number, bool, nil: already JSON-safe.
		return v
	}
}

// recordsOf extracts the records of an array and reports whether every
// element was an object.
func recordsOf(arr []any) ([]apis.Record, bool) {
	records := make([]apis.Record, 0, len(arr))
	for _, el := range arr {
		obj, ok := el.(*jsonObject)
		if !ok {
			return nil, false
		}
		records = append(records, recordOf(obj))
	}
	return records, true
}

// objectRecords keeps the object elements of a top-level array, skipping
// anything else.
func objectRecords(arr []any) []apis.Record {
	records := make([]apis.Record, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(*jsonObject); ok {
			records = append(records, recordOf(obj))
		}
	}
	return records
}
