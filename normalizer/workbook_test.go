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

package normalizer_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dirpx.dev/tabx/normalizer"
)

// writeWorkbook authors a two-sheet fixture: Q1 with data (including a NaN
// cell and a styled datetime cell) and an empty Q2.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Q1"))
	_, err := f.NewSheet("Q2")
	require.NoError(t, err)

	require.NoError(t, f.SetSheetRow("Q1", "A1", &[]any{"metric", "value", "when"}))
	require.NoError(t, f.SetSheetRow("Q1", "A2", &[]any{"revenue", 1200.5, nil}))
	require.NoError(t, f.SetSheetRow("Q1", "A3", &[]any{"margin", "NaN", nil}))

	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, f.SetCellValue("Q1", "C2", when))
	numFmt := "yyyy-mm-dd hh:mm:ss"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Q1", "C2", "C2", style))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestWorkbook_SheetsBecomeTables(t *testing.T) {
	path := writeWorkbook(t)

	tables, err := normalizer.NewWorkbook().Normalize(path)
	require.NoError(t, err)

	require.Len(t, tables, 2)
	assert.Equal(t, "Q1", tables[0].Name)
	assert.Equal(t, "Q2", tables[1].Name)
	assert.Len(t, tables[0].Records, 2)
	assert.Empty(t, tables[1].Records)
}

func TestWorkbook_CellNormalization(t *testing.T) {
	path := writeWorkbook(t)

	tables, err := normalizer.NewWorkbook().Normalize(path)
	require.NoError(t, err)
	recs := tables[0].Records

	metric, _ := recs[0].Get("metric")
	assert.Equal(t, "revenue", metric)
	value, _ := recs[0].Get("value")
	assert.Equal(t, 1200.5, value)

	// A datetime cell normalizes to an ISO-8601 string.
	when, _ := recs[0].Get("when")
	assert.Equal(t, "2024-03-01T00:00:00", when)

	// A NaN cell normalizes to nil.
	nan, _ := recs[1].Get("value")
	assert.Nil(t, nan)
	missing, ok := recs[1].Get("when")
	require.True(t, ok)
	assert.Nil(t, missing)
}

func TestWorkbook_CorruptFileFails(t *testing.T) {
	path := writeFile(t, "broken.xlsx", "this is not a workbook")

	_, err := normalizer.NewWorkbook().Normalize(path)
	var ferr *normalizer.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, path, ferr.Path)
}
