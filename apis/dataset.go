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
	"path/filepath"
	"strings"
	"time"
)

// Dataset is a named, ordered sequence of Records: the unit of retrieval.
// Datasets are constructed once by the snapshot builder and never mutated
// afterwards.
type Dataset struct {
	// Name is the public dataset name, unique within its snapshot.
	Name string
	// Records holds the rows in source order.
	Records []Record
}

// Kind identifies a supported source file format, detected by extension.
type Kind string

const (
	// KindWorkbook is a multi-sheet spreadsheet workbook (.xlsx).
	KindWorkbook Kind = "xlsx"
	// KindJSON is a JSON document (.json).
	KindJSON Kind = "json"
	// KindDelimited is delimited text with a header row (.csv).
	KindDelimited Kind = "csv"
)

// KindForPath detects the Kind of a file from its extension,
// case-insensitively. ok is false for unsupported extensions; legacy .xls
// workbooks (OLE compound files) are not readable as OOXML and are
// unsupported.
func KindForPath(path string) (k Kind, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return KindWorkbook, true
	case ".json":
		return KindJSON, true
	case ".csv":
		return KindDelimited, true
	default:
		return "", false
	}
}

// SourceFile records one discovered file as it was at scan time. It is
// immutable once stored in a Snapshot; a rebuild replaces it wholesale.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path string
	// Kind is the detected format.
	Kind Kind
	// ModTime is the last-modified timestamp observed at scan time.
	ModTime time.Time
	// Size is the file size in bytes observed at scan time.
	Size int64
}
