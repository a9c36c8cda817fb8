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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tabx/normalizer"
)

func TestDelimited_Basic(t *testing.T) {
	var b strings.Builder
	b.WriteString("region,amount,when\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "r%d,%d.5,2024-03-%02d\n", i, i, i+1)
	}
	path := writeFile(t, "sales.csv", b.String())

	tables, err := normalizer.NewDelimited().Normalize(path)
	require.NoError(t, err)

	// Exactly one table, named after the file (empty local name).
	require.Len(t, tables, 1)
	assert.Equal(t, "", tables[0].Name)
	require.Len(t, tables[0].Records, 10)

	rec := tables[0].Records[0]
	assert.Equal(t, []string{"region", "amount", "when"}, rec.Columns())

	region, _ := rec.Get("region")
	assert.Equal(t, "r0", region)
	amount, _ := rec.Get("amount")
	assert.Equal(t, 0.5, amount)
	when, _ := rec.Get("when")
	assert.Equal(t, "2024-03-01T00:00:00", when)
}

func TestDelimited_RowWiseInference(t *testing.T) {
	path := writeFile(t, "mixed.csv", "a,b\n1,true\nx,NaN\n2.5,\n")

	tables, err := normalizer.NewDelimited().Normalize(path)
	require.NoError(t, err)
	recs := tables[0].Records
	require.Len(t, recs, 3)

	v, _ := recs[0].Get("a")
	assert.Equal(t, int64(1), v)
	v, _ = recs[0].Get("b")
	assert.Equal(t, true, v)

	// The same column may infer differently row by row; inference never
	// leaks across rows.
	v, _ = recs[1].Get("a")
	assert.Equal(t, "x", v)
	v, _ = recs[1].Get("b")
	assert.Nil(t, v)

	v, _ = recs[2].Get("a")
	assert.Equal(t, 2.5, v)
	v, _ = recs[2].Get("b")
	assert.Nil(t, v)
}

func TestDelimited_RaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b,c\n1,2\n")

	tables, err := normalizer.NewDelimited().Normalize(path)
	require.NoError(t, err)

	rec := tables[0].Records[0]
	v, ok := rec.Get("c")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestDelimited_HeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "a,b,c\n")

	tables, err := normalizer.NewDelimited().Normalize(path)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Empty(t, tables[0].Records)
}

func TestDelimited_EmptyFileFails(t *testing.T) {
	path := writeFile(t, "none.csv", "")

	_, err := normalizer.NewDelimited().Normalize(path)
	var ferr *normalizer.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, path, ferr.Path)
}
