// Command justredact is the terminal client for the Just Redact
// document-redaction service. It dispatches to the setup, redact, and
// admin subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/Dyno1404/Justredact/internal/cmd/admin"
	"github.com/Dyno1404/Justredact/internal/cmd/redact"
	"github.com/Dyno1404/Justredact/internal/cmd/setup"
)

// main is the process entry point and forwards to run for testable logic.
func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// run parses argv and invokes the matching subcommand handler.
func run(argv []string) error {
	if len(argv) < 2 {
		usage()
		return fmt.Errorf("missing subcommand")
	}

	switch argv[1] {
	case "setup":
		return setup.Run(argv[2:])
	case "redact":
		return redact.Run(argv[2:])
	case "admin":
		return admin.Run(argv[2:])
	case "-h", "--help", "help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown subcommand: %s", argv[1])
	}
}

// usage prints the canonical CLI syntax to stderr.
func usage() {
	fmt.Fprintln(os.Stderr, "justredact <setup|redact|admin> [flags]")
}
