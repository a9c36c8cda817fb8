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
	"github.com/xuri/excelize/v2"

	"dirpx.dev/tabx/apis"
)

// NewWorkbook returns the Normalizer for spreadsheet workbooks. Every
// worksheet yields one table named after the sheet; the first row is the
// header, later rows are records. Cell values pass through the shared
// row-wise scalar inference, so NaN cells become nil and date cells become
// ISO-8601 strings.
func NewWorkbook() apis.Normalizer {
	return workbook{}
}

type workbook struct{}

// Normalize implements apis.Normalizer.
func (workbook) Normalize(path string) ([]apis.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, formatErr(path, "corrupt workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	tables := make([]apis.Table, 0, len(sheets))
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, formatErr(path, "corrupt workbook", err)
		}
		tables = append(tables, apis.Table{
			Name:    sheet,
			Records: sheetRecords(rows),
		})
	}
	return tables, nil
}

// sheetRecords converts raw sheet rows (header first) into records.
// Cells past the header width are dropped; rows shorter than the header
// fill the missing columns with nil.
func sheetRecords(rows [][]string) []apis.Record {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	records := make([]apis.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
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
	return records
}
