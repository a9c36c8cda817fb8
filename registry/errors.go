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

package registry

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotInitialized is returned by read operations before the first
// snapshot has been published.
var ErrNotInitialized = errors.New("tabx(registry): registry not initialized")

// InitializationError wraps the build failure that prevented the first
// snapshot from loading. It is fatal to the embedding process.
type InitializationError struct {
	// Err is the builder's error, typically a *builder.ScanError or
	// *builder.DirectoryError.
	Err error
}

// Error implements the error interface.
func (e *InitializationError) Error() string {
	return "tabx(registry): initialization failed: " + e.Err.Error()
}

// Unwrap returns the wrapped build failure.
func (e *InitializationError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a request for a dataset name absent from the
// current snapshot. Available carries every name the snapshot does hold so
// callers can surface alternatives.
type NotFoundError struct {
	// Name is the requested dataset name.
	Name string
	// Available lists the current snapshot's dataset names in
	// lexicographic order.
	Available []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return "tabx(registry): dataset " + strconv.Quote(e.Name) +
		" not found (available: " + strings.Join(e.Available, ", ") + ")"
}

// InvalidArgumentError reports a malformed pagination parameter.
type InvalidArgumentError struct {
	// Param names the offending parameter ("offset" or "limit").
	Param string
	// Value is the rejected value.
	Value int
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return "tabx(registry): " + e.Param + " must be non-negative, got " +
		strconv.Itoa(e.Value)
}
