package admin

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dyno1404/Justredact/internal/adminapi"
	"github.com/Dyno1404/Justredact/internal/adminui"
	"github.com/Dyno1404/Justredact/internal/config"
	"github.com/Dyno1404/Justredact/internal/logging"
	"github.com/Dyno1404/Justredact/internal/session"
	"github.com/Dyno1404/Justredact/internal/state"
)

type Options struct {
	ConfigPath string
	LogFile    string
}

func Run(args []string) error {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	var opt Options
	fs.StringVar(&opt.ConfigPath, "config", config.DefaultPath, "config file path")
	fs.StringVar(&opt.LogFile, "log-file", "", "append logs to this file (discarded when unset)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		return err
	}

	var w io.Writer
	if opt.LogFile != "" {
		f, err := os.OpenFile(opt.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	lg, err := logging.New(logging.Options{Level: cfg.Log.Level, Writer: w})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := os.MkdirAll(filepath.Dir(cfg.State.Path), 0o700); err != nil {
		return err
	}
	db, err := state.Open(ctx, cfg.State.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	gate := session.NewGate(session.NewStateStore(db), session.Credentials{
		Email:        cfg.Admin.Email,
		PasswordHash: cfg.Admin.PasswordHash,
	})

	client, err := adminapi.NewClient(adminapi.ClientOptions{
		Addr:     cfg.Server.AdminAddr,
		Insecure: cfg.Server.Insecure,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(adminui.New(gate, client, lg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
