package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/previewhost/internal/app"
	"github.com/kk-code-lab/previewhost/internal/catalog"
	"github.com/kk-code-lab/previewhost/internal/config"
	"github.com/kk-code-lab/previewhost/internal/registry"
	"github.com/kk-code-lab/previewhost/internal/resolver"
	"golang.org/x/term"
)

func printHelp() {
	fmt.Print(`previewhost - Terminal file browser with embedded preview handlers

USAGE:
    previewhost [OPTIONS] [DIR]

OPTIONS:
    -h, --help              Show this help message and exit
    -c, --config PATH       Read configuration from PATH
        --resolve EXT       Print the preview handler class for EXT and exit
        --classes           List registered preview handler classes and exit
`)
}

type options struct {
	configPath string
	resolve    string
	classes    bool
	dir        string
}

func parseArgs(args []string) (options, error) {
	opts := options{configPath: config.DefaultPath()}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-c" || arg == "--config":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a path", arg)
			}
			i++
			opts.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--resolve":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires an extension", arg)
			}
			i++
			opts.resolve = args[i]
		case strings.HasPrefix(arg, "--resolve="):
			opts.resolve = strings.TrimPrefix(arg, "--resolve=")
		case arg == "--classes":
			opts.classes = true
		case strings.HasPrefix(arg, "-"):
			return opts, fmt.Errorf("unknown option %s", arg)
		default:
			if opts.dir != "" {
				return opts, fmt.Errorf("unexpected argument %s", arg)
			}
			opts.dir = arg
		}
	}
	return opts, nil
}

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			printHelp()
			os.Exit(0)
		}
	}
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(run(opts))
}

func run(opts options) int {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	logger, logCloser, err := apppkg.OpenLogger(cfg.LogFile, cfg.Level())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return 1
	}
	defer func() {
		_ = logCloser.Close()
	}()

	platform, err := registry.Platform(cfg.Associations, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening associations: %v\n", err)
		return 1
	}
	store := registry.Chain(platform, registry.NewMemoryStore(catalog.DefaultAssociations()))
	res := resolver.New(store, logger)

	classes := catalog.New(logger)
	if err := catalog.RegisterBuiltins(classes); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering previewers: %v\n", err)
		return 1
	}
	if err := catalog.RegisterScripts(classes, scripts(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering plugins: %v\n", err)
		return 1
	}

	switch {
	case opts.resolve != "":
		return printResolved(os.Stdout, res, opts.resolve)
	case opts.classes:
		printClasses(os.Stdout, classes)
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: previewhost needs a terminal")
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if fileStore, ok := platform.(*registry.FileStore); ok && cfg.Watch {
		go func() {
			if err := fileStore.Watch(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("association watch stopped", slog.Any("error", err))
			}
		}()
	}

	app, err := apppkg.NewApplication(apppkg.Options{
		Resolver:   res,
		Activator:  classes,
		Logger:     logger,
		StartDir:   opts.dir,
		DarkTheme:  cfg.Dark(),
		ShowHidden: cfg.ShowHidden,
		Scale:      cfg.Scale,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		return 1
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return 0
}

func scripts(cfg config.Config) []catalog.Script {
	out := make([]catalog.Script, 0, len(cfg.Plugins))
	for _, p := range cfg.Plugins {
		out = append(out, catalog.Script{Class: p.Class, Name: p.Name, Path: p.Script})
	}
	return out
}

// printResolved prints the class registered for ext, or "none" with a
// failing exit status.
func printResolved(w io.Writer, res *resolver.Resolver, ext string) int {
	id, ok := res.Resolve(ext)
	if !ok {
		fmt.Fprintln(w, "none")
		return 1
	}
	fmt.Fprintln(w, id)
	return 0
}

func printClasses(w io.Writer, c *catalog.Catalog) {
	for _, class := range c.Classes() {
		fmt.Fprintf(w, "%s\t%s\n", class.ID, class.Name)
	}
}
