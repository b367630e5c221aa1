package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekcalc/trekcalc/internal/config"
	"github.com/trekcalc/trekcalc/internal/log"
)

func newTestApp(t *testing.T, recent ...string) *app {
	t.Helper()
	return &app{
		settingsPath: filepath.Join(t.TempDir(), "settings.yaml"),
		settings:     &config.Settings{RecentFiles: recent},
		log:          log.Discard(),
	}
}

func TestResolve_DropsRelativeStaleEntry(t *testing.T) {
	a := newTestApp(t, "gone/trek.json")

	_, err := a.resolve(nil)
	assert.ErrorIs(t, err, ErrNoExpedition)
	assert.Empty(t, a.settings.RecentFiles)
}

func TestResolve_SkipsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.json")
	require.NoError(t, os.WriteFile(present, []byte("{}"), 0o644))

	a := newTestApp(t, "gone/trek.json", filepath.Join(dir, "missing.json"), present)

	path, err := a.resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, present, path)
	assert.Equal(t, []string{present}, a.settings.RecentFiles)

	saved, err := config.Load(a.settingsPath)
	require.NoError(t, err)
	assert.Equal(t, []string{present}, saved.RecentFiles)
}

func TestResolve_ArgumentWins(t *testing.T) {
	a := newTestApp(t, "gone/trek.json")

	path, err := a.resolve([]string{"trek.json"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, []string{"gone/trek.json"}, a.settings.RecentFiles)
}
