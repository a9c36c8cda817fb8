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

// Package tabx republishes a directory of heterogeneous structured files
// (spreadsheet workbooks, JSON documents, delimited text) as named,
// paginated datasets behind a read-only query interface.
//
// # Design
//
// The core of tabx is a read-mostly snapshot. A snapshot holds everything
// one build of the source directory produced:
//
//   - Datasets: a mapping from deterministic dataset name to an ordered
//     sequence of records. Names derive from the file base name plus the
//     sheet name or top-level JSON key ("report_Q1", "data_employees"),
//     so repeated builds over unchanged inputs produce identical names.
//
//   - Files: the per-file metadata (path, kind, modification time, size)
//     the build observed.
//
//   - Fingerprint: a deterministic token over that metadata and the
//     dataset name set, used by callers as a cache-validation header.
//
// The registry holds an atomic pointer to the current snapshot. Readers
// load that pointer, use it, and never mutate it. A rebuild constructs a
// brand-new snapshot off the hot path and atomically swaps it in, which
// means lookups are lock-free:
//
//	ds, err := svc.Registry().Dataset("sales")
//	total, page, err := svc.Registry().Page("sales", 0, 50)
//
// and concurrent callers always see one complete snapshot, never a mix of
// old and new. A failed rebuild is logged and discarded; the previously
// published snapshot stays in service, so a bad edit never takes the
// registry offline.
//
// # Normalization
//
// Each supported format has a normalizer that collapses source-specific
// values into a fixed set of JSON-safe scalars: strings, numbers, booleans
// and nulls. Floating-point NaN becomes null, date and time values become
// ISO-8601 strings. Workbooks contribute one dataset per sheet, JSON
// documents one dataset per top-level key holding an array of objects (or a
// single dataset for a bare top-level array), delimited text exactly one
// dataset. Files that fail to normalize are skipped with a logged warning;
// only a directory that yields zero datasets fails the build.
//
// # Change detection
//
// When watching is enabled, filesystem events under the source directory
// are drained by a single consumer that debounces bursts by resetting a
// timer; one rebuild follows the window of quiet. See the watcher package.
//
// # Usage
//
// A typical process does:
//
//	svc := tabx.New(logger,
//		config.WithDir("data-docs"),
//		config.WithWatch(true),
//	)
//	if err := svc.Initialize(); err != nil {
//		// fatal: nothing could be loaded
//	}
//	defer svc.Close()
//	handler := httpapi.New(svc.Registry())
//
// # Scope
//
// tabx is a rebuildable in-memory cache over the source files, not a store
// of record. It never writes to the files, performs no schema validation
// beyond JSON-safe normalization, and offers no querying beyond lookup and
// pagination.
package tabx
