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
	"encoding/csv"
	"errors"
	"io"
	"os"

	"dirpx.dev/tabx/apis"
)

// NewDelimited returns the Normalizer for delimited text files: a header
// row followed by data rows. It yields exactly one table with an empty local
// name ("name after the file"), applying the shared row-wise scalar
// inference to every cell.
func NewDelimited() apis.Normalizer {
	return delimited{}
}

type delimited struct{}

// Normalize implements apis.Normalizer.
func (delimited) Normalize(path string) ([]apis.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, formatErr(path, "unreadable file", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows; missing cells become nil

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, formatErr(path, "empty file", nil)
		}
		return nil, formatErr(path, "invalid delimited text", err)
	}

	var records []apis.Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, formatErr(path, "invalid delimited text", err)
		}
		rec := apis.MakeRecord(len(header))
		for i, col := range header {
			if i < len(row) {
				rec.Set(col, inferScalar(row[i]))
			} else {
				rec.Set(col, nil)
			}
		}
		records = append(records, rec)
	}

	return []apis.Table{{Records: records}}, nil
}
