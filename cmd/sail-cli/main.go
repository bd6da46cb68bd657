/*
NAME
  main.go

DESCRIPTION
  sail-cli is the reference command-line tool built on top of the sail
  facade package (spec.md §6): it exists to demonstrate the four tiers,
  not as a product in its own right. Subcommand dispatch follows
  google-wuffs's cmd/puffs/main.go (a name->func table walked against
  flag.Args()[0]), the closest command-line tool in the example pack to
  what's asked for here (the teacher, ausocean-av, ships long-running
  daemons, not subcommand CLIs).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/
package main

import (
	"fmt"
	"os"

	_ "github.com/ausocean/sail/codec/bmp"
)

// version is stamped by the release process; left as a literal default
// for local builds, matching the teacher's cmd/rv version-flag pattern.
const version = "dev"

var commands = []struct {
	name string
	do   func(args []string) error
}{
	{"convert", doConvert},
	{"list", doList},
	{"probe", doProbe},
}

func usage() {
	fmt.Fprintf(os.Stderr, `sail-cli is a reference tool built on the SAIL image library.

Usage:

	sail-cli command [arguments]

The commands are:

	convert <in> <out> [-c level]   convert in to out, inferring codecs from file extensions
	list [-v]                       list registered codecs
	probe <path>                    report a file's dimensions and pixel format without decoding it

	sail-cli -v | --version         print the version and exit
	sail-cli -h | --help            print this message and exit
`)
}

func main() {
	if err := main1(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "sail-cli:", err)
		os.Exit(1)
	}
}

func main1(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("no command given")
	}
	switch args[0] {
	case "-v", "--version":
		fmt.Println(version)
		return nil
	case "-h", "--help":
		usage()
		return nil
	}
	for _, c := range commands {
		if args[0] == c.name {
			return c.do(args[1:])
		}
	}
	usage()
	return fmt.Errorf("unknown command %q", args[0])
}
