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

// Command tabxd serves a directory of data files over HTTP.
//
// Configuration comes from the environment, optionally overridden by an
// HCL file named in TABX_CONFIG:
//
//	DATA_DIR           source directory (default "data-docs")
//	WATCH_FILE         "true" enables change detection
//	WATCH_DEBOUNCE_MS  debounce window in milliseconds (default 500)
//	LISTEN_ADDR        HTTP listen address (default ":8000")
//	LOG_LEVEL          debug | info | warn | error (default info)
//	TABX_CONFIG        path to an optional HCL config file
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"dirpx.dev/tabx"
	"dirpx.dev/tabx/config"
	"dirpx.dev/tabx/httpapi"
)

func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings is the merged process configuration.
type settings struct {
	DataDir    string `hcl:"data_dir,optional"`
	Watch      bool   `hcl:"watch,optional"`
	DebounceMS int    `hcl:"debounce_ms,optional"`
	ListenAddr string `hcl:"listen_addr,optional"`
	LogLevel   string `hcl:"log_level,optional"`
}

// fromEnv reads the environment into a settings value.
func fromEnv() settings {
	s := settings{
		DataDir:    envOr("DATA_DIR", config.DefaultDir),
		Watch:      strings.EqualFold(os.Getenv("WATCH_FILE"), "true"),
		DebounceMS: int(config.DefaultDebounce / time.Millisecond),
		ListenAddr: envOr("LISTEN_ADDR", ":8000"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
	}
	if ms, err := strconv.Atoi(os.Getenv("WATCH_DEBOUNCE_MS")); err == nil && ms > 0 {
		s.DebounceMS = ms
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run() error {
	cfg := fromEnv()
	if path := os.Getenv("TABX_CONFIG"); path != "" {
		if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
			return fmt.Errorf("tabxd: config file %s: %w", path, err)
		}
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	svc := tabx.New(log,
		config.WithDir(cfg.DataDir),
		config.WithWatch(cfg.Watch),
		config.WithDebounce(time.Duration(cfg.DebounceMS)*time.Millisecond),
	)
	if err := svc.Initialize(); err != nil {
		return fmt.Errorf("tabxd: %w", err)
	}
	defer svc.Close()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.New(svc.Registry(), httpapi.WithLogger(log)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.ListenAddr, "dir", cfg.DataDir, "watch", cfg.Watch)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("tabxd: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
