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

package config

import (
	"time"

	"dirpx.dev/tabx/apis"
)

const (
	// DefaultDir is the directory scanned when none is configured.
	DefaultDir = "data-docs"
	// DefaultWatch represents the default for Watch.
	// Change detection is opt-in.
	DefaultWatch = false
	// DefaultDebounce represents the default debounce window.
	// Long enough to coalesce an editor's multi-step save into one rebuild.
	DefaultDebounce = 500 * time.Millisecond
	// DefaultCollision represents the default duplicate-name policy.
	DefaultCollision = apis.CollisionOverwrite
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure Debounce is valid.
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Dir:       DefaultDir,
		Watch:     DefaultWatch,
		Debounce:  DefaultDebounce,
		Collision: DefaultCollision,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDir sets the scanned directory. An empty value resets to the default.
func WithDir(dir string) Option {
	return func(c *apis.Config) {
		if dir == "" {
			c.Dir = DefaultDir
			return
		}
		c.Dir = dir
	}
}

// WithWatch sets the Watch option.
func WithWatch(watch bool) Option {
	return func(c *apis.Config) {
		c.Watch = watch
	}
}

// WithDebounce sets the debounce window.
// A non-positive value resets to the default.
func WithDebounce(d time.Duration) Option {
	return func(c *apis.Config) {
		if d <= 0 {
			c.Debounce = DefaultDebounce
			return
		}
		c.Debounce = d
	}
}

// WithCollisionPolicy sets the duplicate-dataset-name policy.
func WithCollisionPolicy(p apis.CollisionPolicy) Option {
	return func(c *apis.Config) {
		c.Collision = p
	}
}
