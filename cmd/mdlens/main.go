package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/mdlens/internal/app"
	"github.com/kk-code-lab/mdlens/internal/config"
)

var version = "dev"

var errUsage = errors.New("invalid arguments")

func printHelp(w io.Writer) {
	fmt.Fprint(w, `mdlens - Markup viewer with plain-text search

USAGE:
    mdlens [view] FILE            Open FILE in the interactive viewer
    mdlens plain FILE [--stats]   Print the plain text of FILE
    mdlens blocks FILE            List the display blocks of FILE
    mdlens search FILE QUERY      Print occurrences of QUERY per block
    mdlens serve                  Run the HTTP API

OPTIONS:
    -h, --help       Show this help message and exit
    -v, --version    Print the version and exit

Settings are read from ./mdlens.env and the environment
(LOG_LEVEL, HTTP_SERVER_ADDRESS, STORE_BACKEND, MAX_DOCUMENT_BYTES, ...).
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printHelp(stderr)
		return 2
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "-h", "--help", "help":
		printHelp(stdout)
		return 0
	case "-v", "--version", "version":
		fmt.Fprintf(stdout, "mdlens %s\n", version)
		return 0
	case "view":
		err = withFile(rest, 0, runView)
	case "plain":
		err = runPlain(rest, stdout, stderr)
	case "blocks":
		err = withFile(rest, 0, func(path string, _ []string) error {
			return runBlocks(path, stdout)
		})
	case "search":
		err = withFile(rest, 1, func(path string, extra []string) error {
			return runSearch(path, extra[0], stdout)
		})
	case "serve":
		if len(rest) > 0 {
			err = errUsage
			break
		}
		err = runServe(stderr)
	default:
		// A bare path opens the viewer.
		err = withFile(args, 0, runView)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printHelp(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// withFile checks that args holds a path followed by exactly extra more
// arguments.
func withFile(args []string, extra int, fn func(path string, rest []string) error) error {
	if len(args) != 1+extra {
		return errUsage
	}
	return fn(args[0], args[1:])
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runView(path string, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app, err := apppkg.NewApplication(path, apppkg.Options{
		TabWidth: cfg.TabWidth,
		MaxBytes: cfg.MaxDocumentBytes,
	})
	if err != nil {
		return fmt.Errorf("initializing viewer: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}
