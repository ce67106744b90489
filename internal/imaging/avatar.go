// Package imaging normalises uploaded pictures.
package imaging

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

const (
	AvatarSize     = 256
	MaxUploadBytes = 5 << 20
	ContentType    = "image/webp"
)

// Avatar decodes a PNG, JPEG or WebP picture, crops it to a centred square
// and re-encodes it as an AvatarSize x AvatarSize WebP.
func Avatar(raw []byte) ([]byte, error) {
	if len(raw) == 0 || len(raw) > MaxUploadBytes {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, square(src.Bounds()), draw.Over, nil)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func square(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}
