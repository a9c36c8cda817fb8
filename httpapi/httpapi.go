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

// Package httpapi exposes a registry over a read-only HTTP surface.
//
// Endpoints:
//
//	GET /health    liveness probe
//	GET /datasets  dataset and source-file metadata with cache headers
//	GET /data      records, filtered by ?name= and paginated by
//	               ?offset= / ?limit=
//
// Registry errors map to stable status codes: unknown dataset names yield
// 404 with the available names embedded, malformed pagination yields 400,
// an uninitialized registry yields 500. Responses carry the snapshot
// fingerprint as an ETag and honor If-None-Match with 304.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"dirpx.dev/tabx/apis"
	"dirpx.dev/tabx/registry"
)

// DefaultCacheEntries is the default capacity of the response cache.
const DefaultCacheEntries = 256

// Server serves the HTTP surface for one registry.
type Server struct {
	reg   *registry.Registry
	log   *slog.Logger
	cache *responseCache
	mux   *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request diagnostics logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCacheEntries sets the response cache capacity. Zero disables the
// cache.
func WithCacheEntries(n int) Option {
	return func(s *Server) {
		s.cache = newResponseCache(n)
	}
}

// New constructs the HTTP handler for reg.
func New(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		reg:   reg,
		log:   slog.New(slog.DiscardHandler),
		cache: newResponseCache(DefaultCacheEntries),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /datasets", s.handleDatasets)
	mux.HandleFunc("GET /data", s.handleData)
	s.mux = mux
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type datasetInfo struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

type fileInfo struct {
	Path         string  `json:"path"`
	Type         string  `json:"type"`
	LastModified float64 `json:"last_modified"`
	Size         int64   `json:"size"`
}

type datasetsResponse struct {
	Source    string        `json:"source"`
	Type      string        `json:"type"`
	Datasets  []datasetInfo `json:"datasets"`
	FileCount int           `json:"file_count"`
	Files     []fileInfo    `json:"files"`
}

type pageResponse struct {
	Total    int           `json:"total"`
	Returned int           `json:"returned"`
	Data     []apis.Record `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	listing, err := s.reg.List()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if s.setCacheHeaders(w, r, listing) {
		return
	}

	infos := make([]datasetInfo, 0, len(listing.Datasets))
	for _, d := range listing.Datasets {
		infos = append(infos, datasetInfo{Name: d.Name, Records: d.Records})
	}
	files := make([]fileInfo, 0, len(listing.Files))
	for _, f := range listing.Files {
		files = append(files, fileInfo{
			Path:         f.Path,
			Type:         string(f.Kind),
			LastModified: unixSeconds(f.ModTime),
			Size:         f.Size,
		})
	}
	writeJSON(w, http.StatusOK, datasetsResponse{
		Source:    listing.Source,
		Type:      listing.Mode,
		Datasets:  infos,
		FileCount: listing.FileCount,
		Files:     files,
	})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	// One snapshot for the whole request; a concurrent swap cannot mix
	// datasets from two builds into one response.
	snap := s.reg.Snapshot()
	if snap == nil {
		s.internalError(w, r, registry.ErrNotInitialized)
		return
	}

	q := r.URL.Query()
	offset, hasOffset, err := queryInt(q.Get("offset"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "offset must be an integer", nil)
		return
	}
	limit, hasLimit, err := queryInt(q.Get("limit"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "limit must be an integer", nil)
		return
	}
	paginated := hasOffset || hasLimit
	if !hasOffset {
		offset = 0
	}
	if !hasLimit {
		limit = registry.NoLimit
	}
	if invalid := validatePage(offset, limit); invalid != nil {
		s.writeError(w, http.StatusBadRequest, invalid.Error(), nil)
		return
	}

	names := q["name"]
	if missing := missingNames(snap, names); len(missing) > 0 {
		s.writeError(w, http.StatusNotFound, "Dataset not found", map[string]any{
			"requested": missing,
			"available": snap.Names(),
		})
		return
	}
	if len(names) == 0 {
		names = snap.Names()
	}

	// Conditional requests are evaluated only once the request is known to
	// be answerable: an unknown name must 404 even with a fresh validator.
	if s.etagMatch(w, r, snap.Fingerprint) {
		return
	}

	cacheKey := snap.Fingerprint + "?" + r.URL.RawQuery
	if body, ok := s.cache.get(cacheKey); ok {
		w.Header().Set("ETag", etagFor(snap.Fingerprint))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	payload, err := dataPayload(snap, names, offset, limit, paginated)
	if err != nil {
		var invalid *registry.InvalidArgumentError
		if errors.As(err, &invalid) {
			s.writeError(w, http.StatusBadRequest, invalid.Error(), nil)
			return
		}
		s.internalError(w, r, err)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.cache.add(cacheKey, body)

	w.Header().Set("ETag", etagFor(snap.Fingerprint))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// dataPayload assembles the /data response body. A single unpaginated
// dataset is returned as a bare record array; otherwise datasets map to
// either bare arrays or pagination wrappers, keyed by name.
func dataPayload(snap *apis.Snapshot, names []string, offset, limit int, paginated bool) (any, error) {
	if len(names) == 1 && !paginated {
		ds, _ := snap.Dataset(names[0])
		return ds.Records, nil
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		ds, _ := snap.Dataset(name)
		if !paginated {
			out[name] = ds.Records
			continue
		}
		total, records, err := registry.PageRecords(ds, offset, limit)
		if err != nil {
			return nil, err
		}
		out[name] = pageResponse{Total: total, Returned: len(records), Data: records}
	}
	return out, nil
}

// missingNames returns the requested names absent from the snapshot.
func missingNames(snap *apis.Snapshot, names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := snap.Dataset(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// setCacheHeaders writes ETag and Last-Modified from the listing's own
// snapshot and reports whether the request was answered with 304. Both
// validators come from the listing, never from a fresh registry read, so a
// concurrent publish cannot pair one snapshot's body with another's ETag.
func (s *Server) setCacheHeaders(w http.ResponseWriter, r *http.Request, listing registry.Listing) bool {
	if !listing.LastModified.IsZero() {
		w.Header().Set("Last-Modified", listing.LastModified.UTC().Format(http.TimeFormat))
	}
	return s.etagMatch(w, r, listing.Fingerprint)
}

// etagMatch writes the ETag header and reports whether If-None-Match
// already holds it, in which case a 304 has been written.
func (s *Server) etagMatch(w http.ResponseWriter, r *http.Request, fingerprint string) bool {
	if fingerprint == "" {
		return false
	}
	etag := etagFor(fingerprint)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", "path", r.URL.Path, "error", err)
	s.writeError(w, http.StatusInternalServerError, "Internal server error", nil)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, details any) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// validatePage rejects pagination values PageRecords would refuse. Running
// it before the conditional-request check keeps a fresh If-None-Match
// validator from shadowing the 400.
func validatePage(offset, limit int) *registry.InvalidArgumentError {
	if offset < 0 {
		return &registry.InvalidArgumentError{Param: "offset", Value: offset}
	}
	if limit < 0 && limit != registry.NoLimit {
		return &registry.InvalidArgumentError{Param: "limit", Value: limit}
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(s string) (v int, present bool, err error) {
	if s == "" {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	return v, true, err
}

func etagFor(fingerprint string) string {
	return `"` + fingerprint + `"`
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
