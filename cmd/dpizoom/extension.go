package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/1broseidon/dpizoom/extension"
)

func defaultExtensionDir() string {
	return filepath.Join(xdg.DataHome, "dpizoom", "extension")
}

func runExtension(args []string) int {
	fs := flag.NewFlagSet("extension", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := fs.String("out", defaultExtensionDir(), "Directory to write the extension into")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpizoom extension [--out DIR] [--force]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Write the browser extension to DIR. Load it unpacked from the extensions page,")
		fmt.Fprintln(os.Stderr, "then register the host for its id:")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "  dpizoom manifest --extension-id ID --install chrome")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	written, err := extension.Export(*out, *force)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, path := range written {
		fmt.Println(path)
	}
	return 0
}
