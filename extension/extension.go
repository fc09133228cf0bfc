// Package extension holds the browser extension that pairs with the native
// host. Load the exported directory unpacked, then register the host for the
// extension's id with `dpizoom manifest --extension-id ID --install BROWSER`.
package extension

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed manifest.json worker.js
var files embed.FS

// Files returns the extension sources.
func Files() fs.FS {
	return files
}

// Export writes the extension into dir and returns the written paths.
// Existing files are only replaced when overwrite is set.
func Export(dir string, overwrite bool) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var written []string
	for _, e := range entries {
		data, err := files.ReadFile(e.Name())
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, e.Name())
		if !overwrite {
			if _, err := os.Stat(path); err == nil {
				return written, fmt.Errorf("%s already exists", path)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
