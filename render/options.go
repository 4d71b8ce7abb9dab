// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

// Options are the settings of an [Engine].
type Options struct {

	// FrustumCulling hides draws outside the camera frustum.
	FrustumCulling bool `default:"true"`

	// SortBlend draws blended buckets far to near.
	SortBlend bool `default:"true"`

	// MaxTextureSlots is the number of texture units per draw.
	MaxTextureSlots int `default:"16" min:"1"`
}

// Defaults sets the default options.
func (o *Options) Defaults() {
	o.FrustumCulling = true
	o.SortBlend = true
	o.MaxTextureSlots = 16
}
