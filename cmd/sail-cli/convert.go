package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/sail"
)

func doConvert(args []string) error {
	flags := flag.NewFlagSet("convert", flag.ContinueOnError)
	var level float64
	flags.Float64Var(&level, "c", 0, "compression level (codec-specific scale); 0 uses the codec's default")
	flags.Float64Var(&level, "compression", 0, "long form of -c")
	// flag stops at the first positional argument, so collect leading
	// positionals first to accept -c after <in> <out> as well as before.
	var rest []string
	for len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		rest = append(rest, args[0])
		args = args[1:]
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	rest = append(rest, flags.Args()...)
	if len(rest) != 2 {
		return fmt.Errorf("convert: want exactly 2 arguments <in> <out>, got %d", len(rest))
	}
	in, out := rest[0], rest[1]

	img, err := sail.LoadFromFile(in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", in, err)
	}

	info, err := codec.Default.FromPath(out)
	if err != nil {
		return fmt.Errorf("selecting codec for %s: %w", out, err)
	}

	var opts *codec.SaveOptions
	if level != 0 {
		opts = &codec.SaveOptions{CompressionLevel: level}
	}

	save, err := sail.StartSavingToFileWithOptions(out, info, opts)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", out, err)
	}
	if err := sail.SaveNextFrame(save, img); err != nil {
		sail.StopSaving(save)
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return sail.StopSaving(save)
}
