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

package normalizer

import "errors"

// ErrUnsupportedExtension is returned when no normalizer handles a file's
// extension.
var ErrUnsupportedExtension = errors.New("tabx(normalizer): unsupported file extension")

// FormatError reports that a single file could not be normalized. It is
// recoverable: a directory scan skips the file and continues with its
// siblings.
type FormatError struct {
	// Path is the offending file.
	Path string
	// Reason describes the failure (corrupt structure, unreadable
	// encoding, unsupported extension).
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	msg := "tabx(normalizer): " + e.Path + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// formatErr builds a FormatError for path.
func formatErr(path, reason string, err error) *FormatError {
	return &FormatError{Path: path, Reason: reason, Err: err}
}
