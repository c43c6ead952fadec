package paths

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform swaps the platform lookups for the test's duration.
func fakePlatform(t *testing.T, goos, home, userConfig string) {
	t.Helper()
	saved := platform
	t.Cleanup(func() { platform = saved })
	platform.goos = goos
	platform.homeDir = func() (string, error) { return home, nil }
	platform.userConfigDir = func() (string, error) { return userConfig, nil }
}

func TestDefaultConfigDir(t *testing.T) {
	t.Run("linux uses XDG_CONFIG_HOME", func(t *testing.T) {
		fakePlatform(t, "linux", "/home/cook", "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/foodblog", got)
	})

	t.Run("linux falls back to ~/.config", func(t *testing.T) {
		fakePlatform(t, "linux", "/home/cook", "")
		t.Setenv("XDG_CONFIG_HOME", "")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/cook/.config/foodblog", got)
	})

	t.Run("darwin uses user config dir", func(t *testing.T) {
		fakePlatform(t, "darwin", "/Users/cook", "/Users/cook/Library/Application Support")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/Users/cook/Library/Application Support/foodblog", got)
	})

	t.Run("home lookup error", func(t *testing.T) {
		fakePlatform(t, "linux", "", "")
		platform.homeDir = func() (string, error) { return "", errors.New("no home") }
		t.Setenv("XDG_CONFIG_HOME", "")

		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestDefaultStateDir(t *testing.T) {
	t.Run("linux uses XDG_STATE_HOME", func(t *testing.T) {
		fakePlatform(t, "linux", "/home/cook", "")
		t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

		got, err := DefaultStateDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-state/foodblog", got)
	})

	t.Run("linux falls back to ~/.local/state", func(t *testing.T) {
		fakePlatform(t, "linux", "/home/cook", "")
		t.Setenv("XDG_STATE_HOME", "")

		got, err := DefaultStateDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/cook/.local/state/foodblog", got)
	})

	t.Run("windows matches config dir", func(t *testing.T) {
		fakePlatform(t, "windows", `C:\Users\cook`, "/appdata")

		state, err := DefaultStateDir()
		require.NoError(t, err)
		config, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, config, state)
	})
}

func TestResolveConfigDir(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		envVal string
		want   string
	}{
		{name: "flag wins over env", flag: "/explicit/config", envVal: "/env/config", want: "/explicit/config"},
		{name: "env wins when flag empty", envVal: "/env/config", want: "/env/config"},
		{name: "platform default when both empty", want: "/tmp/xdg/foodblog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakePlatform(t, "linux", "/home/cook", "")
			t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
			t.Setenv(EnvConfigDir, tt.envVal)

			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStateDir(t *testing.T) {
	fakePlatform(t, "linux", "/home/cook", "")
	t.Setenv("XDG_STATE_HOME", "")

	t.Run("config value wins", func(t *testing.T) {
		t.Setenv(EnvStateDir, "/env/state")
		got, err := ResolveStateDir("/config/state")
		require.NoError(t, err)
		assert.Equal(t, "/config/state", got)
	})

	t.Run("env when config empty", func(t *testing.T) {
		t.Setenv(EnvStateDir, "/env/state")
		got, err := ResolveStateDir("")
		require.NoError(t, err)
		assert.Equal(t, "/env/state", got)
	})

	t.Run("relative value becomes absolute", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		got, err := ResolveStateDir("relative/state")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvStateDir, "")
		got, err := ResolveStateDir("")
		require.NoError(t, err)
		assert.Equal(t, "/home/cook/.local/state/foodblog", got)
	})
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/foodblog", "config.yaml"), ConfigFile("/etc/foodblog"))
}

func TestHistoryFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	got, err := HistoryFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history"), got)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
