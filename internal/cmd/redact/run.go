package redact

import (
	"flag"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"

	"github.com/Dyno1404/Justredact/internal/config"
	"github.com/Dyno1404/Justredact/internal/logging"
	"github.com/Dyno1404/Justredact/internal/redactapi"
	"github.com/Dyno1404/Justredact/internal/redactui"
)

type Options struct {
	ConfigPath string
	LogFile    string
}

func Run(args []string) error {
	fs := flag.NewFlagSet("redact", flag.ContinueOnError)
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

	// The TUI owns the terminal, so logs go to a file or nowhere.
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

	client, err := redactapi.NewClient(redactapi.ClientOptions{
		Addr:     cfg.Server.RedactAddr,
		Insecure: cfg.Server.Insecure,
	})
	if err != nil {
		return err
	}

	m := redactui.New(client, afero.NewOsFs(), cfg.DownloadDir, cfg.MaxUploadMB, lg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
