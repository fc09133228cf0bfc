package bridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExtensionID = "abcdefghijklmnopabcdefghijklmnop"

func TestNewManifest(t *testing.T) {
	m, err := NewManifest("/usr/local/bin/dpizoom", testExtensionID)
	require.NoError(t, err)
	assert.Equal(t, HostName, m.Name)
	assert.Equal(t, "stdio", m.Type)
	assert.Equal(t, []string{"chrome-extension://" + testExtensionID + "/"}, m.AllowedOrigins)
}

func TestNewManifest_Rejects(t *testing.T) {
	_, err := NewManifest("/usr/bin/dpizoom", "not-an-id")
	require.Error(t, err)

	_, err = NewManifest("dpizoom", testExtensionID)
	require.Error(t, err)
}

func TestManifest_Install(t *testing.T) {
	m, err := NewManifest("/opt/dpizoom", testExtensionID)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "NativeMessagingHosts")
	path, err := m.Install(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, HostName+".json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "/opt/dpizoom", got["path"])
	assert.Equal(t, HostName, got["name"])
}

func TestManifestDirs(t *testing.T) {
	dirs := ManifestDirs()
	require.Contains(t, dirs, "chrome")
	assert.Equal(t, "NativeMessagingHosts", filepath.Base(dirs["chrome"]))
}
