package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/sail"
)

func TestMain1RejectsUnknownCommand(t *testing.T) {
	if err := main1([]string{"frobnicate"}); err == nil {
		t.Fatal("want an error for an unknown command")
	}
}

func TestMain1RejectsNoArgs(t *testing.T) {
	if err := main1(nil); err == nil {
		t.Fatal("want an error when no command is given")
	}
}

func TestMain1VersionAndHelpSucceed(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}, {"-h"}, {"--help"}} {
		if err := main1(args); err != nil {
			t.Errorf("main1(%v): %v", args, err)
		}
	}
}

func writeSourceBMP(t *testing.T, path string, w, h int) {
	t.Helper()
	img, err := image.NewWithPixels(w, h, pixelformat.RGB24)
	if err != nil {
		t.Fatalf("NewWithPixels: %v", err)
	}
	for y := 0; y < h; y++ {
		row := img.Row(y)
		for i := range row {
			row[i] = byte((y*7 + i) % 251)
		}
	}
	if err := sail.SaveToFile(path, img); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
}

func TestDoConvertRoundTripsBMPToBMP(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bmp")
	out := filepath.Join(dir, "out.bmp")
	writeSourceBMP(t, in, 5, 4)

	if err := doConvert([]string{in, out}); err != nil {
		t.Fatalf("doConvert: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output file missing: %v", err)
	}

	got, err := sail.LoadFromFile(out)
	if err != nil {
		t.Fatalf("LoadFromFile(out): %v", err)
	}
	if got.Width != 5 || got.Height != 4 {
		t.Errorf("dims = %dx%d, want 5x4", got.Width, got.Height)
	}
}

func TestDoConvertRejectsWrongArgCount(t *testing.T) {
	if err := doConvert([]string{"only-one.bmp"}); err == nil {
		t.Fatal("want an error for a single positional argument")
	}
}

func TestDoListSucceeds(t *testing.T) {
	if err := doList(nil); err != nil {
		t.Fatalf("doList: %v", err)
	}
	if err := doList([]string{"-v"}); err != nil {
		t.Fatalf("doList -v: %v", err)
	}
}

func TestDoProbeReportsDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probe.bmp")
	writeSourceBMP(t, path, 3, 2)

	if err := doProbe([]string{path}); err != nil {
		t.Fatalf("doProbe: %v", err)
	}
}

func TestDoProbeRejectsMissingFile(t *testing.T) {
	if err := doProbe([]string{filepath.Join(t.TempDir(), "missing.bmp")}); err == nil {
		t.Fatal("want an error for a missing file")
	}
}
