package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

func main() {
	if launchedByBrowser(os.Args[1:], term.IsTerminal(int(os.Stdin.Fd()))) {
		os.Exit(runHost())
	}
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "host":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: dpizoom host")
			fmt.Fprintln(os.Stdout, "")
			fmt.Fprintln(os.Stdout, "Run the native messaging host on stdin/stdout. Normally started by the browser.")
			os.Exit(0)
		}
		os.Exit(runHost())
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "manifest":
		os.Exit(runManifest(os.Args[2:]))
	case "extension":
		os.Exit(runExtension(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

// launchedByBrowser reports whether the process was started as a native
// messaging host. Chromium passes the caller origin as the first argument;
// a bare start on a piped stdin is treated the same way.
func launchedByBrowser(args []string, stdinIsTerminal bool) bool {
	if len(args) > 0 {
		return strings.HasPrefix(args[0], "chrome-extension://")
	}
	return !stdinIsTerminal
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dpizoom <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  host                Run the native messaging host (started by the browser)")
	fmt.Fprintln(w, "  displays            List displays and the zoom each one gets")
	fmt.Fprintln(w, "  manifest            Print or install the native messaging host manifest")
	fmt.Fprintln(w, "  extension           Write the browser extension for loading unpacked")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config init         Write the default configuration file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP diagnostics server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dpizoom <command> --help' for command-specific options.")
}
