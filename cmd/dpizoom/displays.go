package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/dpizoom/internal/config"
	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/tui"
	"github.com/1broseidon/dpizoom/internal/x11"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output JSON")
	path := fs.String("path", "", "Config file path (default: $XDG_CONFIG_HOME/dpizoom/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dpizoom displays [--json] [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List X11 displays and the zoom factor windows on each one receive.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := displaySource()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Disconnect()

	monitors, err := backend.Monitors()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list displays: %v\n", err)
		return 1
	}
	rows := displayRows(monitors, cfg.Policy())

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(tui.RenderDisplays(rows))
	} else {
		fmt.Print(tui.PlainDisplays(rows))
	}
	return 0
}

func displayRows(monitors []x11.Monitor, policy zoom.Policy) []tui.DisplayRow {
	rows := make([]tui.DisplayRow, 0, len(monitors))
	for _, m := range monitors {
		d := platform.DisplayFromMonitor(m)
		factor := policy.ZoomFor(d)
		rows = append(rows, tui.DisplayRow{
			Display: d,
			Primary: m.Primary,
			DPI:     m.DPI(),
			Zoom:    factor,
			HiDPI:   factor == policy.HiDPI,
		})
	}
	return rows
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// displaySource opens the X11 display source for read-only commands.
func displaySource() (*platform.LinuxBackend, error) {
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to display: %w", err)
	}
	return backend, nil
}
