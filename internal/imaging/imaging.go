// Package imaging shrinks uploaded logos before they are stored.
package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/h2non/filetype"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth = 600
	DefaultQuality  = 60

	dataURLPrefix = "data:image/jpeg;base64,"
)

// Options controls logo compression
type Options struct {
	MaxWidth int
	Quality  int
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// CompressLogo decodes an image, scales it down to the max width keeping its
// aspect ratio and re-encodes it as JPEG. Transparent areas become white.
func CompressLogo(raw []byte, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	if !filetype.IsImage(raw) {
		return nil, ierr.NewError("logo is not an image").
			WithHint("The logo must be a PNG, JPEG, GIF or WebP image").
			Mark(ierr.ErrValidation)
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The logo could not be decoded").
			Mark(ierr.ErrValidation)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > opts.MaxWidth {
		height = height * opts.MaxWidth / width
		width = opts.MaxWidth
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("failed to encode %s logo", format).
			Mark(ierr.ErrSystem)
	}
	return buf.Bytes(), nil
}

// DecodeDataURL accepts either a data url or bare base64 and returns the bytes
func DecodeDataURL(value string) ([]byte, error) {
	if idx := strings.Index(value, ","); strings.HasPrefix(value, "data:") && idx > 0 {
		value = value[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The logo is not valid base64").
			Mark(ierr.ErrValidation)
	}
	return raw, nil
}

// EncodeDataURL wraps compressed JPEG bytes as a data url
func EncodeDataURL(jpegBytes []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(jpegBytes)
}
