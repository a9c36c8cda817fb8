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

// Table is one named record set produced by a Normalizer from a single file.
type Table struct {
	// Name is the local name within the file (a sheet name or a top-level
	// JSON key). An empty Name signals "name the dataset after the file".
	Name string
	// Records holds the normalized rows in source order.
	Records []Record
}

// Normalizer converts one source file into zero or more Tables, collapsing
// format-specific values into the JSON-safe scalars a Record may hold.
//
// Implementations are purely functional transforms over file bytes: no side
// effects, safe for concurrent use. Failures are reported per file and must
// not prevent sibling files from being normalized during a directory scan.
type Normalizer interface {
	// Normalize reads the file at path and returns its tables in source
	// order. Errors describe the offending file (corrupt structure,
	// unreadable encoding, unsupported extension).
	Normalize(path string) ([]Table, error)
}
