package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/ausocean/sail/codec"
)

func doList(args []string) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	verbose := flags.Bool("v", false, "also print description, mime types, priority, and magic numbers")
	if err := flags.Parse(args); err != nil {
		return err
	}

	for _, info := range codec.Default.List() {
		fmt.Printf("%-8s %s\n", info.Name, strings.Join(info.Extensions, ","))
		if *verbose {
			fmt.Printf("  description:   %s\n", info.Description)
			fmt.Printf("  mime-types:    %s\n", strings.Join(info.MimeTypes, ","))
			fmt.Printf("  priority:      %d\n", info.Priority)
			fmt.Printf("  magic-numbers: %s\n", strings.Join(info.MagicNumbers, "; "))
		}
	}
	return nil
}
