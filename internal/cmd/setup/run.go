package setup

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Dyno1404/Justredact/internal/auth"
	"github.com/Dyno1404/Justredact/internal/config"
	"github.com/Dyno1404/Justredact/internal/session"
)

type Options struct {
	ConfigPath string
	Force      bool
}

// Run interactively writes a config file with a hashed admin credential,
// replacing the built-in development login.
func Run(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	var opt Options
	fs.StringVar(&opt.ConfigPath, "config", config.DefaultPath, "config file to write")
	fs.BoolVar(&opt.Force, "force", false, "overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(opt.ConfigPath); err == nil && !opt.Force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", opt.ConfigPath)
	}

	in := bufio.NewReader(os.Stdin)
	fmt.Printf("Admin email [%s]: ", session.DefaultEmail)
	email, err := in.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = session.DefaultEmail
	}

	fmt.Print("Admin password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Print("Repeat password: ")
	pw2, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	if string(pw) != string(pw2) {
		return errors.New("passwords do not match")
	}

	hash, err := auth.HashPassword(string(pw), auth.DefaultArgon2Params())
	if err != nil {
		return err
	}

	cfg := config.Config{
		Log:         config.LogConfig{Level: "info"},
		Server:      config.ServerConfig{RedactAddr: "http://127.0.0.1:5000"},
		State:       config.StateConfig{Path: "./data/justredact.db"},
		Admin:       config.AdminConfig{Email: email, PasswordHash: hash},
		DownloadDir: ".",
		MaxUploadMB: 25,
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.State.Path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(opt.ConfigPath, b, 0o600); err != nil {
		return err
	}
	fmt.Println("Wrote", opt.ConfigPath)
	return nil
}
