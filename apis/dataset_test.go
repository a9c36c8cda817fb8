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

package apis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/tabx/apis"
)

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		kind apis.Kind
		ok   bool
	}{
		{"report.xlsx", apis.KindWorkbook, true},
		{"Report.XLSX", apis.KindWorkbook, true},
		{"data.json", apis.KindJSON, true},
		{"sales.csv", apis.KindDelimited, true},
		{"/abs/dir/sales.CSV", apis.KindDelimited, true},
		// Legacy OLE compound workbooks are not a supported format.
		{"legacy.xls", "", false},
		{"legacy.XLS", "", false},
		{"notes.txt", "", false},
		{"noext", "", false},
	}
	for _, tt := range tests {
		kind, ok := apis.KindForPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.kind, kind, tt.path)
	}
}
