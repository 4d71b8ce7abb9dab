// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"time"
)

// Stats measure the frame rate of an [App] over a rolling window.
type Stats struct {

	// Window is the minimum time over which FPS is averaged.
	Window time.Duration

	// Frames is the total number of measured frames.
	Frames int64

	// FPS is the frame rate over the last complete window.
	FPS float64

	// FrameTime is the duration of the last frame.
	FrameTime time.Duration

	now          func() time.Time
	frameStart   time.Time
	windowStart  time.Time
	windowFrames int
}

func newStats(window time.Duration, now func() time.Time) *Stats {
	return &Stats{Window: max(window, 2*time.Second), now: now}
}

// BeginFrame marks the start of a frame.
func (st *Stats) BeginFrame() {
	st.frameStart = st.now()
	if st.windowStart.IsZero() {
		st.windowStart = st.frameStart
	}
}

// EndFrame marks the end of the frame, updating FPS once the window
// has elapsed.
func (st *Stats) EndFrame() {
	t := st.now()
	st.FrameTime = t.Sub(st.frameStart)
	st.Frames++
	st.windowFrames++
	if el := t.Sub(st.windowStart); el >= st.Window {
		st.FPS = float64(st.windowFrames) / el.Seconds()
		st.windowStart = t
		st.windowFrames = 0
	}
}
