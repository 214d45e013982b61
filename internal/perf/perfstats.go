// Copyright the bitlayout authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package perf provides a lightweight before/after memory and wall-clock
// snapshot for logging long-running batch operations.
package perf

import (
	"fmt"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// Stats snapshots memory allocation and wall-clock time at creation, so
// the cost of a batch of work can be logged once it completes.
type Stats struct {
	startTime time.Time
	startMem  uint64
	startGc   uint32
}

// New captures the current allocation state.
func New() *Stats {
	var m runtime.MemStats

	startTime := time.Now()

	runtime.ReadMemStats(&m)

	return &Stats{startTime, m.TotalAlloc, m.NumGC}
}

// Log writes a debug-level summary of elapsed time and allocations since
// New was called, prefixed by prefix.
func (s *Stats) Log(prefix string) {
	log.Debugf("%s took %s", prefix, s.String())
}

// String reports the usage so far.
func (s *Stats) String() string {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)
	allocMB := (m.TotalAlloc - s.startMem) / 1024 / 1024
	gcs := m.NumGC - s.startGc
	exectime := time.Since(s.startTime).Seconds()

	return fmt.Sprintf("%0.2fs using %v MB (%v GC events) [%v MB live]", exectime, allocMB, gcs, m.Alloc/1024/1024)
}
