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

package watcher_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/tabx/watcher"
)

// countingRebuilder records how many times it was triggered.
type countingRebuilder struct {
	n   atomic.Int64
	err error
}

func (c *countingRebuilder) Rebuild() error {
	c.n.Add(1)
	return c.err
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func startWatcher(t *testing.T, dir string, target watcher.Rebuilder) *watcher.Watcher {
	t.Helper()
	w, err := watcher.New(dir, target, watcher.WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestRebuildAfterChange(t *testing.T) {
	dir := t.TempDir()
	target := &countingRebuilder{}
	startWatcher(t, dir, target)

	write(t, dir, "sales.csv", "a\n1\n")

	require.Eventually(t, func() bool {
		return target.n.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "one rebuild after the debounce window")
}

func TestBurstCoalescesIntoOneRebuild(t *testing.T) {
	dir := t.TempDir()
	target := &countingRebuilder{}
	startWatcher(t, dir, target)

	// A burst of writes well inside the debounce window.
	for i := 0; i < 5; i++ {
		write(t, dir, "sales.csv", "a\n1\n")
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return target.n.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// Let any stray timer fire, then check the burst collapsed.
	time.Sleep(200 * time.Millisecond)
	assert.LessOrEqual(t, target.n.Load(), int64(2), "burst must coalesce")
}

func TestIrrelevantFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	target := &countingRebuilder{}
	startWatcher(t, dir, target)

	write(t, dir, "notes.txt", "scratch")
	write(t, dir, "README.md", "readme")

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, target.n.Load(), "unsupported extensions must not trigger a rebuild")
}

func TestRebuildFailureDoesNotStopWatching(t *testing.T) {
	dir := t.TempDir()
	target := &countingRebuilder{err: errors.New("boom")}
	startWatcher(t, dir, target)

	write(t, dir, "a.json", "{}")
	require.Eventually(t, func() bool {
		return target.n.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// The consumer must survive the failure and react to the next burst.
	write(t, dir, "b.json", "{}")
	require.Eventually(t, func() bool {
		return target.n.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCloseStopsConsumer(t *testing.T) {
	dir := t.TempDir()
	target := &countingRebuilder{}
	w, err := watcher.New(dir, target, watcher.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.NoError(t, w.Close())

	// Events after Close must not trigger rebuilds.
	write(t, dir, "late.csv", "a\n1\n")
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, target.n.Load())
}

func TestStartFailsOnMissingDirectory(t *testing.T) {
	target := &countingRebuilder{}
	w, err := watcher.New(filepath.Join(t.TempDir(), "missing"), target)
	require.NoError(t, err)
	assert.Error(t, w.Start())
}
