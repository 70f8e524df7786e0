package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"

	"github.com/sant0-9/cvgen/internal/config"
	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/profile"
	"github.com/sant0-9/cvgen/internal/tui"
	"github.com/sant0-9/cvgen/internal/web"
)

var version = "dev"

// Options for the CLI. Each can also be set as SERVICE_<NAME>.
type Options struct {
	Debug  bool   `doc:"Log source file and line" short:"d" default:"false"`
	Host   string `doc:"Hostname to listen on" default:"localhost"`
	Port   int    `doc:"Port to listen on" short:"p" default:"8888"`
	APIKey string `doc:"AI21 Studio API key, overrides the config file and AI21_API_KEY"`
	Model  string `doc:"Default model: large, grande or jumbo"`
}

func main() {
	var opts *Options

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		opts = options
		if options.Debug {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}

		var server *http.Server

		hooks.OnStart(func() {
			cfg, err := resolveConfig(options)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
				os.Exit(1)
			}

			gen, err := newGenerator(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			handler, _, err := web.NewHandler(gen, web.Defaults{Model: cfg.Model, Temperature: cfg.Temperature})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Unable to add routes: %v\n", err)
				os.Exit(1)
			}

			server = &http.Server{
				Addr:              fmt.Sprintf("%s:%d", options.Host, options.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			log.Printf("[Main] Starting CV profile generator on http://%s (model %s)", server.Addr, cfg.Model)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("[Main] listen error: %v", err)
				os.Exit(1)
			}
			log.Printf("[Main] Server on %s stopped", server.Addr)
		})

		hooks.OnStop(func() {
			if server == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				log.Printf("[Main] shutdown error: %v", err)
			}
		})
	})

	root := cli.Root()
	root.Use = "cvgen"
	root.Short = "Generate CV profiles with AI21 Jurassic-1"
	root.Version = version

	root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Run the form in the terminal",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runTUI(opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	})

	cli.Run()
}

// resolveConfig merges config file, .env, environment and flags
func resolveConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	if opts != nil {
		if opts.APIKey != "" {
			cfg.OverrideAPIKey(opts.APIKey)
		}
		if opts.Model != "" {
			cfg.Model = opts.Model
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newGenerator(cfg *config.Config) (*profile.Generator, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return profile.NewGenerator(provider, cfg.Model), nil
}

func runTUI(opts *Options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	// The alternate screen owns stdout, so logs go to a file
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.SetOutput(logFile)

	app := tui.NewApp(cfg)
	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	app.SetProgram(p)

	_, err = p.Run()
	return err
}

func openLogFile() (*os.File, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "cvgen.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
