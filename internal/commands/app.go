package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/activitylog"
	"github.com/trekcalc/trekcalc/internal/catalog"
	"github.com/trekcalc/trekcalc/internal/config"
	"github.com/trekcalc/trekcalc/internal/expedition"
	"github.com/trekcalc/trekcalc/internal/log"
	"github.com/trekcalc/trekcalc/internal/render"
)

// ErrNoExpedition is returned when no file is given and no recent file exists.
var ErrNoExpedition = errors.New("no expedition file given and no recent files")

// app is the state shared by all subcommands of one invocation.
type app struct {
	settingsPath string
	verbose      bool

	settings *config.Settings
	log      *log.Logger
	store    *expedition.Store
	catalog  *catalog.Catalog
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.settingsPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.settingsPath = p
	}
	s, err := config.LoadOrCreate(a.settingsPath)
	if err != nil {
		return err
	}
	a.settings = s

	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(s.LogLevel)
	if a.verbose {
		cfg.Level = slog.LevelDebug
	}
	cfg.Output = cmd.ErrOrStderr()
	a.log = log.New(cfg)
	a.store = expedition.NewStore(a.log)
	a.catalog = catalog.New(catalog.Default())
	return nil
}

// resolve picks the expedition file: the argument if given, otherwise the
// most recent file that still exists. Recent entries whose files are gone are
// dropped with a warning.
func (a *app) resolve(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	for {
		path, ok := a.settings.MostRecent()
		if !ok {
			return "", ErrNoExpedition
		}
		if config.FileExists(path) {
			return filepath.Abs(path)
		}
		a.log.Warn("recent file no longer exists, forgetting it", "path", path)
		if !a.settings.Forget(path) {
			return "", fmt.Errorf("dropping stale recent file %q: %w", path, ErrNoExpedition)
		}
		a.saveSettings()
	}
}

// open resolves and loads an expedition and moves it to the front of the
// recent list.
func (a *app) open(args []string) (string, *expedition.Expedition, error) {
	path, err := a.resolve(args)
	if err != nil {
		return "", nil, err
	}
	exp, err := a.store.Load(path)
	if err != nil {
		return "", nil, err
	}
	a.remember(path)
	return path, exp, nil
}

func (a *app) save(path string, exp *expedition.Expedition) error {
	if err := a.store.Save(path, exp); err != nil {
		return fmt.Errorf("saving expedition: %w", err)
	}
	return nil
}

func (a *app) remember(path string) {
	a.settings.Touch(path)
	a.saveSettings()
}

func (a *app) saveSettings() {
	if err := config.Save(a.settingsPath, a.settings); err != nil {
		a.log.WithComponent(log.ComponentSettings).Warn("could not save settings", "path", a.settingsPath, "error", err)
	}
}

// record appends to the expedition's activity log. A failure is logged and
// otherwise ignored: the change itself has already been saved.
func (a *app) record(path string, entries ...activitylog.Entry) {
	logPath := activitylog.PathFor(path)
	if err := activitylog.Append(logPath, entries...); err != nil {
		a.log.WithComponent(log.ComponentActivity).Warn("could not write activity log", "path", logPath, "error", err)
	}
}

func (a *app) renderer(w io.Writer) *render.Renderer {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = render.ColorEnabled(f, a.settings.Display.Color)
	}
	return render.New(w, render.Options{Currency: a.settings.Display.Currency, Color: colored})
}
