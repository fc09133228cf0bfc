package bridge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
)

// HostName is the native messaging host name the extension connects to.
const HostName = "io.github.dpizoom"

// Manifest is a native messaging host manifest.
type Manifest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Path           string   `json:"path"`
	Type           string   `json:"type"`
	AllowedOrigins []string `json:"allowed_origins"`
}

var extensionIDPattern = regexp.MustCompile(`^[a-p]{32}$`)

// NewManifest returns the manifest for the host binary at path, allowing
// only the given extension.
func NewManifest(path, extensionID string) (*Manifest, error) {
	if !extensionIDPattern.MatchString(extensionID) {
		return nil, fmt.Errorf("invalid extension id %q: want 32 characters a-p", extensionID)
	}
	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("host path must be absolute: %s", path)
	}
	return &Manifest{
		Name:           HostName,
		Description:    "Sync browser zoom to display resolution",
		Path:           path,
		Type:           "stdio",
		AllowedOrigins: []string{"chrome-extension://" + extensionID + "/"},
	}, nil
}

func (m *Manifest) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ManifestDirs returns the per-user manifest directories of the Chromium
// family browsers.
func ManifestDirs() map[string]string {
	return map[string]string{
		"chrome":   filepath.Join(xdg.ConfigHome, "google-chrome", "NativeMessagingHosts"),
		"chromium": filepath.Join(xdg.ConfigHome, "chromium", "NativeMessagingHosts"),
		"brave":    filepath.Join(xdg.ConfigHome, "BraveSoftware", "Brave-Browser", "NativeMessagingHosts"),
	}
}

// Install writes m into dir as <HostName>.json and returns the file path.
func (m *Manifest) Install(dir string) (string, error) {
	data, err := m.Marshal()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, HostName+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
