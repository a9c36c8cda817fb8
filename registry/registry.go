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

// Package registry publishes snapshots behind a lock-free read path.
//
// The core of the package is an atomic pointer to the current immutable
// snapshot. Readers load that pointer, use the snapshot, and never take a
// lock; writers build a brand-new snapshot off to the side (serialized on a
// build mutex) and atomically swap it in. In-flight reads therefore always
// observe one complete snapshot, never a mix of two builds, and a failed
// rebuild leaves the previously published snapshot in service.
package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/tabx/apis"
	"dirpx.dev/tabx/builder"
)

// NoLimit requests an unpaginated page: all records from the offset on.
const NoLimit = -1

// Registry holds the currently published snapshot and answers read queries
// against it. All read operations are safe for concurrent use and never
// block on file I/O.
type Registry struct {
	builder *builder.Builder
	log     *slog.Logger

	// buildMu serializes rebuilds so we never publish out of order.
	// It is never held by readers.
	buildMu sync.Mutex
	snap    atomic.Pointer[apis.Snapshot]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for rebuild diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// New constructs a Registry that builds its snapshots with b.
// The registry serves no data until Initialize succeeds.
func New(b *builder.Builder, opts ...Option) *Registry {
	r := &Registry{
		builder: b,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize builds and publishes the first snapshot. It returns an
// *InitializationError when no datasets could be loaded; the embedding
// process should treat that as fatal.
func (r *Registry) Initialize() error {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	snap, err := r.builder.Build()
	if err != nil {
		return &InitializationError{Err: err}
	}
	r.snap.Store(snap)
	return nil
}

// Rebuild builds a new snapshot and publishes it on success. On failure the
// previously published snapshot stays in service and the error is returned
// for the caller to log. Concurrent Rebuild calls are serialized.
func (r *Registry) Rebuild() error {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	snap, err := r.builder.Build()
	if err != nil {
		return err
	}
	r.snap.Store(snap)
	return nil
}

// Publish atomically swaps in an externally built snapshot.
// Nil snapshots are ignored.
func (r *Registry) Publish(snap *apis.Snapshot) {
	if snap == nil {
		return
	}
	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	r.snap.Store(snap)
}

// Snapshot returns the currently published snapshot, or nil before
// Initialize has succeeded. The returned snapshot is immutable and remains
// valid after later rebuilds.
func (r *Registry) Snapshot() *apis.Snapshot {
	return r.snap.Load()
}

// DatasetInfo describes one dataset in a listing.
type DatasetInfo struct {
	// Name is the public dataset name.
	Name string
	// Records is the dataset's record count.
	Records int
}

// Listing summarizes the current snapshot for metadata queries.
type Listing struct {
	// Source describes the data source for humans.
	Source string
	// Mode is "single" for one source file, "multiple" otherwise.
	Mode string
	// FileCount is the number of contributing files.
	FileCount int
	// LastModified is the most recent modification time across files.
	LastModified time.Time
	// Datasets lists every dataset with its record count, in
	// lexicographic name order.
	Datasets []DatasetInfo
	// Files holds the per-file metadata in scan order.
	Files []apis.SourceFile
	// Fingerprint is the cache-validation token of the snapshot this
	// listing describes. Callers deriving cache validators must use it
	// rather than re-reading the registry, which may have published a
	// newer snapshot in the meantime.
	Fingerprint string
}

// List returns name and record-count metadata for every dataset in the
// current snapshot, plus per-file metadata and a source summary.
func (r *Registry) List() (Listing, error) {
	snap := r.snap.Load()
	if snap == nil {
		return Listing{}, ErrNotInitialized
	}

	mode := "multiple"
	if len(snap.Files) == 1 {
		mode = "single"
	}
	infos := make([]DatasetInfo, 0, len(snap.Datasets))
	for _, name := range snap.Names() {
		infos = append(infos, DatasetInfo{
			Name:    name,
			Records: len(snap.Datasets[name].Records),
		})
	}
	return Listing{
		Source:       fmt.Sprintf("Directory with %d files", len(snap.Files)),
		Mode:         mode,
		FileCount:    len(snap.Files),
		LastModified: snap.LastModified(),
		Datasets:     infos,
		Files:        snap.Files,
		Fingerprint:  snap.Fingerprint,
	}, nil
}

// Dataset returns the named dataset from the current snapshot. A missing
// name yields a *NotFoundError carrying every available name.
func (r *Registry) Dataset(name string) (*apis.Dataset, error) {
	snap := r.snap.Load()
	if snap == nil {
		return nil, ErrNotInitialized
	}
	ds, ok := snap.Dataset(name)
	if !ok {
		return nil, &NotFoundError{Name: name, Available: snap.Names()}
	}
	return ds, nil
}

// Page returns the dataset's total record count and the records in
// [offset, offset+limit). A limit of NoLimit returns everything from the
// offset on; an offset at or past the total yields an empty slice, not an
// error. Negative offsets, and negative limits other than NoLimit, yield an
// *InvalidArgumentError.
//
// The returned slice aliases the snapshot's records and must be treated as
// read-only.
func (r *Registry) Page(name string, offset, limit int) (int, []apis.Record, error) {
	ds, err := r.Dataset(name)
	if err != nil {
		return 0, nil, err
	}
	return PageRecords(ds, offset, limit)
}

// PageRecords paginates one dataset with the same validation and boundary
// rules as Page. It is exported so callers holding a snapshot can paginate
// several datasets against a single consistent view.
func PageRecords(ds *apis.Dataset, offset, limit int) (int, []apis.Record, error) {
	if offset < 0 {
		return 0, nil, &InvalidArgumentError{Param: "offset", Value: offset}
	}
	if limit < 0 && limit != NoLimit {
		return 0, nil, &InvalidArgumentError{Param: "limit", Value: limit}
	}
	total := len(ds.Records)
	if offset >= total {
		return total, []apis.Record{}, nil
	}
	end := total
	if limit != NoLimit && offset+limit < total {
		end = offset + limit
	}
	return total, ds.Records[offset:end], nil
}

// Fingerprint returns the current snapshot's cache-validation token. Two
// calls return the same token iff no rebuild was published in between. It
// returns the empty string before Initialize has succeeded.
func (r *Registry) Fingerprint() string {
	snap := r.snap.Load()
	if snap == nil {
		return ""
	}
	return snap.Fingerprint
}
