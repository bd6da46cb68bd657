package main

import (
	"flag"
	"fmt"

	"github.com/ausocean/sail/sail"
)

func doProbe(args []string) error {
	flags := flag.NewFlagSet("probe", flag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("probe: want exactly 1 argument <path>, got %d", len(rest))
	}

	hdr, info, err := sail.Probe(rest[0])
	if err != nil {
		return fmt.Errorf("probing %s: %w", rest[0], err)
	}
	fmt.Printf("codec:        %s\n", info.Name)
	fmt.Printf("dimensions:   %dx%d\n", hdr.Width, hdr.Height)
	fmt.Printf("pixel-format: %s\n", hdr.PixelFormat)
	fmt.Printf("bytes/line:   %d\n", hdr.BytesPerLine)
	return nil
}
