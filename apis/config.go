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

import "time"

// CollisionPolicy decides what happens when two files derive the same
// dataset name within one build.
type CollisionPolicy int

const (
	// CollisionOverwrite keeps the later-processed file's dataset
	// (last-write-wins by deterministic scan order).
	CollisionOverwrite CollisionPolicy = iota
	// CollisionKeepFirst keeps the earlier-processed file's dataset.
	CollisionKeepFirst
)

// Config carries the read-only knobs of a registry instance.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Dir is the directory scanned for source files.
	Dir string

	// Watch enables change detection: edits under Dir trigger a debounced
	// rebuild and an atomic snapshot swap.
	Watch bool

	// Debounce is the delay after the last detected change event before a
	// rebuild is triggered, coalescing rapid successive events.
	Debounce time.Duration

	// Collision selects the duplicate-dataset-name policy for a build.
	Collision CollisionPolicy
}
