package sail_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/codec/bmp"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/sail"
)

func testRegistry(t *testing.T) *codec.Registry {
	t.Helper()
	r := codec.NewRegistry()
	bmp.Register(r)
	if err := r.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return r
}

func solidBMP(t *testing.T, r *codec.Registry, w, h int) []byte {
	t.Helper()
	img, err := image.NewWithPixels(w, h, pixelformat.RGB24)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for i := range row {
			row[i] = byte((y*3 + i) % 241)
		}
	}
	info, err := r.FromExtension("bmp")
	if err != nil {
		t.Fatalf("FromExtension: %v", err)
	}
	buf, err := sail.SaveToMemory(info, img)
	if err != nil {
		t.Fatalf("SaveToMemory: %v", err)
	}
	return buf
}

// TestJuniorLoadFromMemoryUsesDefaultRegistry exercises the Junior facade
// against the process-wide codec.Default registry (bmp.Register's init
// side effect registers BMP there).
func TestJuniorLoadFromMemoryUsesDefaultRegistry(t *testing.T) {
	r := codec.Default
	buf := solidBMP(t, r, 4, 3)

	img, err := sail.LoadFromMemory(buf)
	if err != nil {
		t.Fatalf("LoadFromMemory: %v", err)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Errorf("dims = %dx%d, want 4x3", img.Width, img.Height)
	}
}

func TestJuniorProbeReportsHeaderWithoutPixels(t *testing.T) {
	r := codec.Default
	buf := solidBMP(t, r, 4, 3)

	path := filepath.Join(t.TempDir(), "probe.bmp")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	hdr, info, err := sail.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if info.Name == "" {
		t.Error("Probe returned an unnamed codec info")
	}
	if hdr.Width != 4 || hdr.Height != 3 {
		t.Errorf("dims = %dx%d, want 4x3", hdr.Width, hdr.Height)
	}
	if len(hdr.Pixels.Bytes()) != 0 {
		t.Errorf("Probe allocated %d bytes of pixel data, want 0", len(hdr.Pixels.Bytes()))
	}

	img, err := sail.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(img.Pixels.Bytes()) == 0 {
		t.Error("loaded image unexpectedly has no pixel data")
	}
}

func TestAdvancedStartStopLoadingIsIdempotent(t *testing.T) {
	r := codec.Default
	buf := solidBMP(t, r, 2, 2)

	state, err := sail.StartLoadingFromMemory(buf)
	if err != nil {
		t.Fatalf("StartLoadingFromMemory: %v", err)
	}
	img, err := sail.LoadNextFrame(state)
	if err != nil {
		t.Fatalf("LoadNextFrame: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("dims = %dx%d, want 2x2", img.Width, img.Height)
	}
	if err := sail.StopLoading(state); err != nil {
		t.Fatalf("StopLoading: %v", err)
	}
	// Stopping twice is a documented no-op (spec.md §8).
	if err := sail.StopLoading(state); err != nil {
		t.Fatalf("second StopLoading: %v", err)
	}
	if err := sail.StopLoading(nil); err != nil {
		t.Fatalf("StopLoading(nil): %v", err)
	}
}

func TestDeepDiverRoundTripWithExplicitOptions(t *testing.T) {
	r := codec.Default
	info, err := r.FromExtension("bmp")
	if err != nil {
		t.Fatalf("FromExtension: %v", err)
	}

	src, err := image.NewWithPixels(3, 2, pixelformat.RGBA32)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	for y := 0; y < 2; y++ {
		row := src.Row(y)
		for x := 0; x < 3; x++ {
			row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = 11, 22, 33, 255
		}
	}

	var buf []byte
	save, err := sail.StartSavingToMemoryWithOptions(&buf, info, codec.SaveOptionsFromFeatures(info.SaveFeatures))
	if err != nil {
		t.Fatalf("StartSavingToMemoryWithOptions: %v", err)
	}
	if err := sail.SaveNextFrame(save, src); err != nil {
		t.Fatalf("SaveNextFrame: %v", err)
	}
	if err := sail.StopSaving(save); err != nil {
		t.Fatalf("StopSaving: %v", err)
	}

	load, err := sail.StartLoadingFromMemoryWithOptions(buf, info, codec.LoadOptionsFromFeatures(info.LoadFeatures))
	if err != nil {
		t.Fatalf("StartLoadingFromMemoryWithOptions: %v", err)
	}
	got, err := sail.LoadNextFrame(load)
	if err != nil {
		t.Fatalf("LoadNextFrame: %v", err)
	}
	if err := sail.StopLoading(load); err != nil {
		t.Fatalf("StopLoading: %v", err)
	}

	if diff := cmp.Diff(src.Pixels.Bytes(), got.Pixels.Bytes()); diff != "" {
		t.Errorf("pixel data mismatch (-want +got):\n%s", diff)
	}
}
