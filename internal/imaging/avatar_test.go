package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
)

func pngOf(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func TestAvatarIsSquareWebP(t *testing.T) {
	out, err := Avatar(pngOf(400, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, AvatarSize, cfg.Width)
	assert.Equal(t, AvatarSize, cfg.Height)
}

func TestAvatarRejectsGarbage(t *testing.T) {
	_, err := Avatar([]byte("definitely not an image"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = Avatar(nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))
}

func TestSquareCrop(t *testing.T) {
	assert.Equal(t, image.Rect(100, 0, 300, 200), square(image.Rect(0, 0, 400, 200)))
	assert.Equal(t, image.Rect(0, 50, 100, 150), square(image.Rect(0, 0, 100, 200)))
}
