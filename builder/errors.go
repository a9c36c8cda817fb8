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

package builder

import "strings"

// DirectoryError reports that the configured source directory is missing or
// unreadable. It is fatal to the build attempt that encountered it.
type DirectoryError struct {
	// Dir is the directory that failed.
	Dir string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DirectoryError) Error() string {
	return "tabx(builder): unreadable directory " + e.Dir + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// ScanError aggregates the per-file failures of a scan that produced zero
// datasets. Individual file failures never abort a scan; only a scan with
// nothing to show for it escalates to this error.
type ScanError struct {
	// Dir is the scanned directory.
	Dir string
	// Errs holds the per-file failures, in scan order. It is empty when the
	// directory simply contained no supported files.
	Errs []error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	var b strings.Builder
	b.WriteString("tabx(builder): no datasets loaded from " + e.Dir)
	for _, err := range e.Errs {
		b.WriteString("\n\t" + err.Error())
	}
	return b.String()
}

// Unwrap returns the aggregated per-file failures.
func (e *ScanError) Unwrap() []error {
	return e.Errs
}
