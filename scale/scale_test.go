package scale_test

import (
	"testing"

	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/scale"
	"github.com/ausocean/sail/status"
)

func solidRGB24(t *testing.T, w, h int, r, g, b byte) *image.Image {
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

func TestScaleRejectsZeroDimensions(t *testing.T) {
	src := solidRGB24(t, 4, 4, 10, 20, 30)
	_, err := scale.Image(src, 0, 4, scale.Nearest)
	if status.CodeOf(err) != status.InvalidArgument {
		t.Fatalf("err = %v, want InvalidArgument", err)
	}
}

func TestScaleRejectsNonByteAligned(t *testing.T) {
	img := image.New()
	img.Width, img.Height = 8, 1
	img.PixelFormat = pixelformat.Indexed4
	img.BytesPerLine = pixelformat.BytesPerLine(8, pixelformat.Indexed4)
	img.Pixels = image.NewOwnedPixels(make([]byte, img.BytesPerLine))

	_, err := scale.Image(img, 4, 1, scale.Bilinear)
	if status.CodeOf(err) != status.UnsupportedPixelFormat {
		t.Fatalf("err = %v, want UnsupportedPixelFormat", err)
	}
}

func TestScaleSameDimensionsCopies(t *testing.T) {
	src := solidRGB24(t, 3, 3, 1, 2, 3)
	out, err := scale.Image(src, 3, 3, scale.Bicubic)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if out == src {
		t.Error("expected a copy, got the same pointer")
	}
	if out.Width != 3 || out.Height != 3 {
		t.Errorf("dims = %dx%d, want 3x3", out.Width, out.Height)
	}
}

// TestScaleSolidColorStaysUniform checks that, whatever the algorithm, a
// uniform-color source upsamples/downsamples to the same uniform color:
// every kernel's weights sum to 1 once normalized, so a constant input
// field must reproduce exactly.
func TestScaleSolidColorStaysUniform(t *testing.T) {
	for _, alg := range []scale.Algorithm{scale.Nearest, scale.Bilinear, scale.Bicubic, scale.Lanczos} {
		alg := alg
		t.Run(alg.String(), func(t *testing.T) {
			src := solidRGB24(t, 4, 4, 100, 150, 200)
			out, err := scale.Image(src, 7, 9, alg)
			if err != nil {
				t.Fatalf("Image: %v", err)
			}
			if out.Width != 7 || out.Height != 9 {
				t.Fatalf("dims = %dx%d, want 7x9", out.Width, out.Height)
			}
			if out.PixelFormat != pixelformat.RGB24 {
				t.Fatalf("pixel format = %s, want RGB24", out.PixelFormat)
			}
			for y := 0; y < out.Height; y++ {
				row := out.Row(y)
				for x := 0; x < out.Width; x++ {
					r, g, b := row[x*3], row[x*3+1], row[x*3+2]
					if r != 100 || g != 150 || b != 200 {
						t.Fatalf("pixel (%d,%d) = [%d %d %d], want [100 150 200]", x, y, r, g, b)
					}
				}
			}
		})
	}
}

func TestScaleDownsampleHalvesDimensions(t *testing.T) {
	src := solidRGB24(t, 8, 6, 5, 6, 7)
	out, err := scale.Image(src, 4, 3, scale.Lanczos)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if out.Width != 4 || out.Height != 3 {
		t.Errorf("dims = %dx%d, want 4x3", out.Width, out.Height)
	}
}

func TestScalePreservesRGBA32Alpha(t *testing.T) {
	img, err := image.NewWithPixels(2, 2, pixelformat.RGBA32)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	for y := 0; y < 2; y++ {
		row := img.Row(y)
		for x := 0; x < 2; x++ {
			row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = 10, 20, 30, 128
		}
	}

	out, err := scale.Image(img, 5, 5, scale.Bilinear)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	row := out.Row(2)
	if row[2*4+3] != 128 {
		t.Errorf("alpha = %d, want 128", row[2*4+3])
	}
}
