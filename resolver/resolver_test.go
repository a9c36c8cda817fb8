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

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/tabx/resolver"
)

func TestFileBase(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/report.xlsx", "report"},
		{"/data/sales.csv", "sales"},
		{"data.json", "data"},
		{"/data/archive.2024.csv", "archive.2024"},
		{"/data/noext", "noext"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolver.FileBase(tt.path), "FileBase(%q)", tt.path)
	}
}

func TestDatasetName(t *testing.T) {
	tests := []struct {
		fileBase string
		local    string
		want     string
	}{
		{"report", "Q1", "report_Q1"},
		{"data", "employees", "data_employees"},
		// Empty local name signals "name after the file".
		{"sales", "", "sales"},
		// Characters outside [A-Za-z0-9_] collapse to '_'.
		{"report", "Q1 Summary", "report_Q1_Summary"},
		{"report", "a-b.c/d", "report_a_b_c_d"},
		{"report", "année", "report_ann_e"},
		{"report", "under_score", "report_under_score"},
	}
	for _, tt := range tests {
		got := resolver.DatasetName(tt.fileBase, tt.local)
		assert.Equal(t, tt.want, got, "DatasetName(%q, %q)", tt.fileBase, tt.local)
	}
}

// Derivation must be stable across calls: the registry relies on repeated
// builds yielding identical names.
func TestDatasetName_Deterministic(t *testing.T) {
	first := resolver.DatasetName("report", "Q1 (final)")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, resolver.DatasetName("report", "Q1 (final)"))
	}
}
