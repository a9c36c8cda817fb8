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
	"sort"
	"time"
)

// Snapshot is an immutable, self-consistent view of all datasets at one
// point in time: the unit of consistency for the registry.
//
// A Snapshot is constructed once per build cycle and published atomically;
// never mutate the fields of a published Snapshot. Readers that hold a
// *Snapshot see exactly one build, never a mix of two.
type Snapshot struct {
	// Datasets maps public dataset name to its data.
	Datasets map[string]*Dataset
	// Files lists the contributing source files in scan order.
	Files []SourceFile
	// BuiltAt is the time the snapshot was assembled.
	BuiltAt time.Time
	// Fingerprint is a deterministic token over the snapshot's source-file
	// metadata and dataset names, used for cache validation. Two snapshots
	// built from the same unchanged inputs carry the same fingerprint.
	Fingerprint string
}

// Dataset returns the dataset with the given name, if present.
func (s *Snapshot) Dataset(name string) (*Dataset, bool) {
	ds, ok := s.Datasets[name]
	return ds, ok
}

// Names returns all dataset names in lexicographic order.
func (s *Snapshot) Names() []string {
	out := make([]string, 0, len(s.Datasets))
	for name := range s.Datasets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// TotalRecords returns the number of records across all datasets.
func (s *Snapshot) TotalRecords() int {
	n := 0
	for _, ds := range s.Datasets {
		n += len(ds.Records)
	}
	return n
}

// LastModified returns the most recent ModTime across the snapshot's files,
// or the zero time if the snapshot has no files.
func (s *Snapshot) LastModified() time.Time {
	var t time.Time
	for _, f := range s.Files {
		if f.ModTime.After(t) {
			t = f.ModTime
		}
	}
	return t
}
