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

package tabx

import (
	"log/slog"

	"dirpx.dev/tabx/apis"
	"dirpx.dev/tabx/builder"
	"dirpx.dev/tabx/config"
	"dirpx.dev/tabx/registry"
	"dirpx.dev/tabx/watcher"
)

// Service owns a registry and, when watching is enabled, the change watcher
// that keeps it fresh. It is the explicitly lifecycle-managed handle an
// embedding process passes into its serving layer.
type Service struct {
	cfg apis.Config
	log *slog.Logger
	reg *registry.Registry
	w   *watcher.Watcher
}

// New constructs a Service from the given options. A nil log discards all
// diagnostics. Call Initialize before serving reads and Close on shutdown.
func New(log *slog.Logger, opts ...config.Option) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := config.NewConfig(opts...)
	b := builder.New(cfg, builder.WithLogger(log))
	return &Service{
		cfg: cfg,
		log: log,
		reg: registry.New(b, registry.WithLogger(log)),
	}
}

// Registry returns the registry handle serving reads.
func (s *Service) Registry() *registry.Registry {
	return s.reg
}

// Initialize builds and publishes the first snapshot, then starts the
// change watcher if the configuration enables it. An error from the initial
// build is fatal and nothing is started; a watcher setup failure is logged
// and the service continues without change detection.
func (s *Service) Initialize() error {
	if err := s.reg.Initialize(); err != nil {
		return err
	}
	if !s.cfg.Watch {
		return nil
	}
	w, err := watcher.New(s.cfg.Dir, s.reg,
		watcher.WithDebounce(s.cfg.Debounce),
		watcher.WithLogger(s.log),
	)
	if err == nil {
		err = w.Start()
	}
	if err != nil {
		s.log.Error("change detection unavailable", "dir", s.cfg.Dir, "error", err)
		return nil
	}
	s.w = w
	return nil
}

// Close stops the change watcher. The registry keeps serving its last
// published snapshot until the process exits.
func (s *Service) Close() error {
	if s.w == nil {
		return nil
	}
	err := s.w.Close()
	s.w = nil
	return err
}
