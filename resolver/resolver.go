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

// Package resolver derives public dataset names from source file names and
// the local names (sheet names, top-level JSON keys) a normalizer reports.
//
// The derivation is deterministic: repeated builds from unchanged inputs
// always produce identical names. A present local name yields
// "{file_base}_{local}" with every character of the local part outside
// [A-Za-z0-9_] replaced by '_'; an absent local name (the "name after the
// file" signal) yields the file base itself.
package resolver

import (
	"path/filepath"
	"strings"
)

// FileBase returns the base name of path without its extension: the
// "file_base" part of a derived dataset name.
func FileBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DatasetName derives the public dataset name for a table with the given
// local name, or for the whole file when local is empty.
func DatasetName(fileBase, local string) string {
	if local == "" {
		return fileBase
	}
	return fileBase + "_" + sanitize(local)
}

// sanitize replaces every character outside [A-Za-z0-9_] with '_'.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
