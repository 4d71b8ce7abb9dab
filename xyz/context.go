// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

// RenderContext is the per-frame information passed to updates.
type RenderContext struct {

	// Frame is the number of the current frame, starting at 1.
	Frame int64

	// Time is the time in seconds since the app was started,
	// not advancing while paused.
	Time float64

	// DeltaTime is the time in seconds since the previous frame.
	DeltaTime float64

	// Scene is the scene being updated.
	Scene *Scene

	// Camera is the camera the frame will be rendered with.
	Camera *Camera

	// UpdateOnlySelf restricts Update to the object itself, without
	// cascading into children or components. It is set by
	// [UpdateManager], which schedules those separately.
	UpdateOnlySelf bool
}
