package convert_test

import (
	"testing"

	"github.com/ausocean/sail/convert"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/meta"
	"github.com/ausocean/sail/pixelformat"
)

func makeRGB24(t *testing.T, w, h int, r, g, b byte) *image.Image {
	t.Helper()
	img, err := image.NewWithPixels(w, h, pixelformat.RGB24)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for x := 0; x < w; x++ {
			row[x*3], row[x*3+1], row[x*3+2] = r, g, b
		}
	}
	return img
}

func TestConvertToRGBA32PreservesColorAndAddsOpaqueAlpha(t *testing.T) {
	src := makeRGB24(t, 2, 2, 10, 20, 30)

	got, err := convert.ConvertTo(src, pixelformat.RGBA32, nil)
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}

	row := got.Row(0)
	if row[0] != 10 || row[1] != 20 || row[2] != 30 || row[3] != 255 {
		t.Errorf("pixel = %v, want [10 20 30 255]", row[:4])
	}
}

func TestConvertDropAlphaIsDefault(t *testing.T) {
	src, err := image.NewWithPixels(1, 1, pixelformat.RGBA32)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	row := src.Row(0)
	row[0], row[1], row[2], row[3] = 200, 100, 50, 0 // fully transparent

	got, err := convert.ConvertTo(src, pixelformat.RGB24, nil)
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}

	// DROP_ALPHA: the color channels pass through unchanged regardless of
	// the (discarded) alpha value.
	dst := got.Row(0)
	if dst[0] != 200 || dst[1] != 100 || dst[2] != 50 {
		t.Errorf("pixel = %v, want [200 100 50]", dst[:3])
	}
}

func TestConvertBlendAlphaAgainstBackground(t *testing.T) {
	src, err := image.NewWithPixels(1, 1, pixelformat.RGBA32)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	row := src.Row(0)
	row[0], row[1], row[2], row[3] = 255, 255, 255, 0 // fully transparent white

	opts := &convert.Options{
		Alpha:        convert.BlendAlpha,
		Background24: [3]byte{10, 20, 30},
	}
	got, err := convert.ConvertTo(src, pixelformat.RGB24, opts)
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}

	// Fully transparent: output should equal the background exactly.
	dst := got.Row(0)
	if dst[0] != 10 || dst[1] != 20 || dst[2] != 30 {
		t.Errorf("pixel = %v, want background [10 20 30]", dst[:3])
	}
}

func TestConvertIndexedUnpacksMSBFirst(t *testing.T) {
	img := image.New()
	img.Width, img.Height = 8, 1
	img.PixelFormat = pixelformat.Indexed1
	img.BytesPerLine = pixelformat.BytesPerLine(8, pixelformat.Indexed1)
	img.Pixels = image.NewOwnedPixels([]byte{0b10110010})
	img.Palette = &meta.Palette{
		Format:     pixelformat.RGB24,
		EntryCount: 2,
		Bytes:      []byte{0, 0, 0, 255, 255, 255}, // index 0 -> black, index 1 -> white
	}

	got, err := convert.ConvertTo(img, pixelformat.RGB24, nil)
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}

	want := []byte{1, 0, 1, 1, 0, 0, 1, 0} // MSB first
	row := got.Row(0)
	for x, bit := range want {
		gotVal := row[x*3]
		wantVal := byte(0)
		if bit == 1 {
			wantVal = 255
		}
		if gotVal != wantVal {
			t.Errorf("pixel %d = %d, want %d", x, gotVal, wantVal)
		}
	}
}

// TestConvertCMYKUsesDirectProductFormula pins down the engine's CMYK->RGB
// formula to R,G,B = C,M,Y·K/255 (cmyk.c's shipped formula, not the more
// "conventional" complement-based one it leaves commented out). At K=255
// the product is the identity, so C,M,Y pass through unchanged, where the
// complement formula would give black; at K=0 the product forces black,
// where the complement formula would give the inverted C,M,Y. Both cases
// distinguish the two formulas.
func TestConvertCMYKUsesDirectProductFormula(t *testing.T) {
	img := image.New()
	img.Width, img.Height = 1, 1
	img.PixelFormat = pixelformat.CMYK32
	img.BytesPerLine = pixelformat.BytesPerLine(1, pixelformat.CMYK32)
	img.Pixels = image.NewOwnedPixels([]byte{255, 128, 0, 255}) // K=255: identity

	got, err := convert.ConvertTo(img, pixelformat.RGB24, nil)
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}
	row := got.Row(0)
	if row[0] != 255 || row[1] != 128 || row[2] != 0 {
		t.Errorf("CMYK(255,128,0,255) -> RGB = %v, want [255 128 0]", row[:3])
	}

	img.Pixels = image.NewOwnedPixels([]byte{255, 128, 0, 0}) // K=0: forces black
	got, err = convert.ConvertTo(img, pixelformat.RGB24, nil)
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}
	row = got.Row(0)
	if row[0] != 0 || row[1] != 0 || row[2] != 0 {
		t.Errorf("CMYK(255,128,0,0) -> RGB = %v, want [0 0 0]", row[:3])
	}
}
