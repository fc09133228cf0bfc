package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/1broseidon/dpizoom/internal/bridge"
)

func runManifest(args []string) int {
	fs := flag.NewFlagSet("manifest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	extensionID := fs.String("extension-id", "", "ID of the extension allowed to connect (required)")
	hostPath := fs.String("path", "", "Absolute path of the host binary (default: this executable)")
	install := fs.String("install", "", "Install for a browser (chrome, chromium, brave, all) instead of printing")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpizoom manifest --extension-id ID [--path PATH] [--install BROWSER]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the native messaging host manifest, or install it for the current user.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *extensionID == "" || fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	path := *hostPath
	if path == "" {
		exe, err := os.Executable()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to find executable: %v\n", err)
			return 1
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		path = exe
	}

	m, err := bridge.NewManifest(path, *extensionID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if *install == "" {
		data, err := m.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(data)
		return 0
	}

	dirs := bridge.ManifestDirs()
	var targets []string
	if *install == "all" {
		for name := range dirs {
			targets = append(targets, name)
		}
		sort.Strings(targets)
	} else if _, ok := dirs[*install]; ok {
		targets = []string{*install}
	} else {
		fmt.Fprintf(os.Stderr, "Unknown browser: %s\n", *install)
		return 2
	}

	for _, name := range targets {
		written, err := m.Install(dirs[name])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("%s: %s\n", name, written)
	}
	return 0
}
