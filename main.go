package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abertrand/fable/internal/app"
	"github.com/abertrand/fable/internal/catalog"
	"github.com/abertrand/fable/internal/config"
	"github.com/abertrand/fable/internal/driver"
	"github.com/abertrand/fable/internal/errmsg"
	"github.com/abertrand/fable/internal/playback"
	"github.com/abertrand/fable/internal/store"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	var st *store.Manager
	if cfg.DataDir != "" {
		st, err = store.OpenPath(filepath.Join(cfg.DataDir, "fable.db"))
	} else {
		st, err = store.Open()
	}
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	ctrl := playback.New(playback.Options{
		Driver:        driver.NewBeep(),
		Store:         st,
		Catalog:       catalog.NewClient(cfg.ManifestURL),
		SkipSeconds:   float64(cfg.SkipSeconds),
		FlushInterval: cfg.FlushInterval(),
		ToastLifetime: cfg.ToastLifetime(),
	})

	p := tea.NewProgram(app.New(ctrl), tea.WithAltScreen())
	_, runErr := p.Run()

	closeErr := ctrl.Close()
	if err := st.Close(); closeErr == nil {
		closeErr = err
	}

	if runErr != nil {
		return runErr
	}
	return closeErr
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
