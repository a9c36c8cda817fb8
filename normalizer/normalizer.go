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

// Package normalizer turns raw source files into ordered sets of named
// record tables, one implementation per supported format.
//
// Typical chain in a directory scan: detect the file's kind by extension,
// pick the matching normalizer via ForPath, and collect its tables. All
// implementations apply the same scalar normalization rules: floating-point
// NaN becomes nil, date/time values become ISO-8601 strings, and every
// stored value is one of the JSON-safe scalars a Record may hold.
//
// Normalizers are stateless and safe for concurrent use.
package normalizer

import "dirpx.dev/tabx/apis"

// ForPath returns the Normalizer responsible for the file's extension,
// or ErrUnsupportedExtension when no format matches.
func ForPath(path string) (apis.Normalizer, error) {
	kind, ok := apis.KindForPath(path)
	if !ok {
		return nil, formatErr(path, "unsupported extension", ErrUnsupportedExtension)
	}
	return ForKind(kind), nil
}

// ForKind returns the Normalizer for a detected file kind.
func ForKind(kind apis.Kind) apis.Normalizer {
	switch kind {
	case apis.KindWorkbook:
		return NewWorkbook()
	case apis.KindJSON:
		return NewDocument()
	case apis.KindDelimited:
		return NewDelimited()
	default:
		return nil
	}
}
