// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex reads and writes images in the common formats,
// chosen by filename extension, for use as textures.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"cogentcore.org/xr/base/errors"
)

// Formats are the supported image formats.
type Formats int32

const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = [...]string{"none", "png", "jpeg", "gif", "tiff", "bmp", "webp"}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ErrFormat is returned for unknown or write-only-unsupported formats.
var ErrFormat = errors.New("imagex: unsupported image format")

// FormatFromExt returns the format for a filename extension,
// with or without the leading dot.
func FormatFromExt(ext string) (Formats, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	}
	return None, errors.Errorf("%w: %q", ErrFormat, ext)
}

// Open decodes the image in the given file, detecting its format
// from the content.
func Open(filename string) (image.Image, Formats, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// OpenFS is [Open] on a file system, such as embedded files.
func OpenFS(fsys fs.FS, filename string) (image.Image, Formats, error) {
	f, err := fsys.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer f.Close()
	return Read(bufio.NewReader(f))
}

// Read decodes an image, detecting its format from the content.
func Read(r io.Reader) (image.Image, Formats, error) {
	im, name, err := image.Decode(r)
	if err != nil {
		return nil, None, err
	}
	f, err := FormatFromExt(name)
	return im, f, err
}

// Save encodes the image to the given file in the format of its
// extension. WebP can only be read.
func Save(im image.Image, filename string) error {
	f, err := FormatFromExt(filepath.Ext(filename))
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(file)
	err = Write(im, bw, f)
	if err == nil {
		err = bw.Flush()
	}
	return errors.Join(err, file.Close())
}

// Write encodes the image in the given format.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	}
	return errors.Errorf("%w: cannot write %v", ErrFormat, f)
}

// AsRGBA returns the image as an RGBA with its bounds starting at
// 0,0 and rows packed without padding, converting it if needed.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
